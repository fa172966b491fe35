package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"benefitscout/internal/ratelimit/metrics"
	"benefitscout/internal/ratelimit/models"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	audit "benefitscout/pkg/platform/audit"
	"benefitscout/pkg/requestcontext"
)

type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

// Limits maps each endpoint class to its budget.
type Limits map[models.EndpointClass]models.Limit

// DefaultLimits derives per-class budgets from a base per-minute rate.
// Writes get half the base and the calculator-style endpoints twice it.
func DefaultLimits(perMinute int) Limits {
	if perMinute < 1 {
		perMinute = 1
	}
	return Limits{
		models.ClassRead:     {RequestsPerWindow: perMinute, Window: time.Minute},
		models.ClassWrite:    {RequestsPerWindow: max(perMinute/2, 1), Window: time.Minute},
		models.ClassEvaluate: {RequestsPerWindow: perMinute * 2, Window: time.Minute},
	}
}

type Service struct {
	buckets        BucketStore
	limits         Limits
	auditPublisher audit.Emitter
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Emitter) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithLimits(limits Limits) Option {
	return func(s *Service) {
		s.limits = limits
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}
	s := &Service{
		buckets: buckets,
		limits:  DefaultLimits(60),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckUser consumes one request from the user's budget for class.
func (s *Service) CheckUser(ctx context.Context, userID id.UserID, class models.EndpointClass) (*models.RateLimitResult, error) {
	return s.check(ctx, models.KeyPrefixUser, userID.String(), userID, class)
}

// CheckIP consumes one request from the client address's budget for class.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	return s.check(ctx, models.KeyPrefixIP, ip, id.UserID{}, class)
}

func (s *Service) check(ctx context.Context, prefix models.KeyPrefix, identifier string, userID id.UserID, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := s.limits[class]
	if !ok {
		// Default-deny: a class without a budget is a wiring mistake.
		s.logger.ErrorContext(ctx, "rate limit config missing",
			"endpoint_class", class,
			"limit_type", prefix,
		)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    requestcontext.Now(ctx),
			RetryAfter: 60,
		}, nil
	}

	key := models.NewRateLimitKey(prefix, identifier, class)
	result, err := s.buckets.Allow(ctx, key.String(), limit.RequestsPerWindow, limit.Window)
	if err != nil {
		s.metrics.IncrementStoreErrors()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}
	s.metrics.RecordDecision(string(class), result.Allowed)

	if !result.Allowed {
		s.logger.WarnContext(ctx, "rate limit exceeded",
			"request_id", requestcontext.RequestID(ctx),
			"limit_type", prefix,
			"endpoint_class", class,
			"limit", limit.RequestsPerWindow,
			"window_seconds", int(limit.Window.Seconds()),
		)
		s.emitExceeded(ctx, userID, class)
	}
	return result, nil
}

// emitExceeded records user throttling. Anonymous callers have no audit subject.
func (s *Service) emitExceeded(ctx context.Context, userID id.UserID, class models.EndpointClass) {
	if s.auditPublisher == nil || userID.IsNil() {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   string(class),
		Action:    string(audit.EventRateLimitExceeded),
		Decision:  "rejected",
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit rate limit audit event", "error", err)
	}
}
