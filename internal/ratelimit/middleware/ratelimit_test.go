package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitscout/internal/ratelimit/models"
	"benefitscout/internal/ratelimit/service/requestlimit"
	"benefitscout/internal/ratelimit/store/bucket"
	id "benefitscout/pkg/domain"
	"benefitscout/pkg/requestcontext"
	"benefitscout/pkg/testutil"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newLimitedHandler(t *testing.T, perWindow int) http.Handler {
	t.Helper()
	svc, err := requestlimit.New(bucket.NewInMemoryBucketStore(), requestlimit.WithLimits(requestlimit.Limits{
		models.ClassRead: {RequestsPerWindow: perWindow, Window: time.Minute},
	}))
	require.NoError(t, err)
	mw := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mw.RateLimit(models.ClassRead)(okHandler)
}

func TestRateLimitPerUser(t *testing.T) {
	h := newLimitedHandler(t, 2)
	alice := id.NewUserID()
	bob := id.NewUserID()

	for i := 0; i < 2; i++ {
		rr := testutil.DoRequest(h, testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/eligibility"), alice))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	}

	rr := testutil.DoRequest(h, testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/eligibility"), alice))
	testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rate_limited")
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = testutil.DoRequest(h, testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/eligibility"), bob))
	assert.Equal(t, http.StatusOK, rr.Code, "other users keep their own budget")
}

func TestRateLimitAnonymousByIP(t *testing.T) {
	h := newLimitedHandler(t, 1)

	withIP := func(ip string) *http.Request {
		req := testutil.NewRequest(t, http.MethodPost, "/eligibility/evaluate")
		return req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
	}

	assert.Equal(t, http.StatusOK, testutil.DoRequest(h, withIP("10.0.0.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, testutil.DoRequest(h, withIP("10.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, testutil.DoRequest(h, withIP("10.0.0.2")).Code)
}

type erroringLimiter struct{}

func (erroringLimiter) CheckUser(_ context.Context, _ id.UserID, _ models.EndpointClass) (*models.RateLimitResult, error) {
	return nil, errors.New("redis: connection refused")
}

func (erroringLimiter) CheckIP(_ context.Context, _ string, _ models.EndpointClass) (*models.RateLimitResult, error) {
	return nil, errors.New("redis: connection refused")
}

func TestRateLimitFailsOpen(t *testing.T) {
	mw := New(erroringLimiter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := mw.RateLimit(models.ClassRead)(okHandler)

	rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/benefits"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	mw := New(erroringLimiter{}, slog.New(slog.NewTextHandler(io.Discard, nil)), WithDisabled(true))
	h := mw.RateLimit(models.ClassRead)(okHandler)

	rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/benefits"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}

func TestClassForMethod(t *testing.T) {
	tests := map[string]models.EndpointClass{
		http.MethodGet:    models.ClassRead,
		http.MethodHead:   models.ClassRead,
		http.MethodPost:   models.ClassEvaluate,
		http.MethodPut:    models.ClassWrite,
		http.MethodDelete: models.ClassWrite,
	}
	for method, want := range tests {
		t.Run(method, func(t *testing.T) {
			assert.Equal(t, want, ClassForMethod(testutil.NewRequest(t, method, "/")))
		})
	}
}

func TestRateLimitByMethodUsesSeparateBudgets(t *testing.T) {
	svc, err := requestlimit.New(bucket.NewInMemoryBucketStore(), requestlimit.WithLimits(requestlimit.Limits{
		models.ClassRead:  {RequestsPerWindow: 1, Window: time.Minute},
		models.ClassWrite: {RequestsPerWindow: 1, Window: time.Minute},
	}))
	require.NoError(t, err)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).RateLimitByMethod()(okHandler)
	alice := id.NewUserID()

	do := func(method string) int {
		return testutil.DoRequest(h, testutil.WithUserID(testutil.NewRequest(t, method, "/user/profile"), alice)).Code
	}
	assert.Equal(t, http.StatusOK, do(http.MethodGet))
	assert.Equal(t, http.StatusOK, do(http.MethodPut), "writes have their own budget")
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodGet))
}
