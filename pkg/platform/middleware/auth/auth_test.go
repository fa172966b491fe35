package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	"benefitscout/pkg/requestcontext"
)

type stubValidator struct {
	tokens map[string]id.UserID
}

func (v stubValidator) ExtractUserID(token string) (id.UserID, error) {
	if userID, ok := v.tokens[token]; ok {
		return userID, nil
	}
	return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := id.NewUserID()
	validator := stubValidator{tokens: map[string]id.UserID{"good": userID}}

	var seen id.UserID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		header     string
		wantStatus int
		wantUser   id.UserID
	}{
		{"required with valid token", RequireAuth(validator, logger), "Bearer good", http.StatusOK, userID},
		{"required without header", RequireAuth(validator, logger), "", http.StatusUnauthorized, id.UserID{}},
		{"required with wrong scheme", RequireAuth(validator, logger), "Basic good", http.StatusUnauthorized, id.UserID{}},
		{"required with bad token", RequireAuth(validator, logger), "Bearer bad", http.StatusUnauthorized, id.UserID{}},
		{"optional without header", OptionalAuth(validator, logger), "", http.StatusOK, id.UserID{}},
		{"optional with valid token", OptionalAuth(validator, logger), "Bearer good", http.StatusOK, userID},
		{"optional with bad token", OptionalAuth(validator, logger), "Bearer bad", http.StatusUnauthorized, id.UserID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = id.UserID{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			tt.mw(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUser, seen)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rr.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
