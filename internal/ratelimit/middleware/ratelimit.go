package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"benefitscout/internal/ratelimit/models"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	"benefitscout/pkg/platform/httputil"
	"benefitscout/pkg/requestcontext"
)

type RateLimiter interface {
	CheckUser(ctx context.Context, userID id.UserID, class models.EndpointClass) (*models.RateLimitResult, error)
	CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns rate limiting off entirely (local development).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{limiter: limiter, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit charges the authenticated user's budget, or the client IP's
// budget for anonymous requests. Store failures fail open.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return m.limit(func(*http.Request) models.EndpointClass { return class })
}

// RateLimitByMethod derives the class from the method: safe methods are
// reads, POST is an evaluation and every other method is a write.
func (m *Middleware) RateLimitByMethod() func(http.Handler) http.Handler {
	return m.limit(ClassForMethod)
}

func ClassForMethod(r *http.Request) models.EndpointClass {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return models.ClassRead
	case http.MethodPost:
		return models.ClassEvaluate
	default:
		return models.ClassWrite
	}
}

func (m *Middleware) limit(classify func(*http.Request) models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			class := classify(r)
			ctx := r.Context()
			var (
				result *models.RateLimitResult
				err    error
			)
			if userID := requestcontext.UserID(ctx); !userID.IsNil() {
				result, err = m.limiter.CheckUser(ctx, userID, class)
			} else {
				result, err = m.limiter.CheckIP(ctx, requestcontext.ClientIP(ctx), class)
			}
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check rate limit",
					"request_id", requestcontext.RequestID(ctx),
					"endpoint_class", class,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				writeRateLimitExceeded(w, result)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result.Limit == 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited,
		"Too many requests. Please try again in "+strconv.Itoa(result.RetryAfter)+" seconds."))
}
