package testutil

import (
	"net/http"

	id "benefitscout/pkg/domain"
	"benefitscout/pkg/requestcontext"
)

// WithUserID adds a user ID to the request context, as the auth middleware would for an
// authenticated request.
func WithUserID(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
