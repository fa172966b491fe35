// Package service manages the stored household profile: lookup, partial
// updates with validation, and the audit trail for changes.
package service

import (
	"context"
	"errors"
	"log/slog"

	"benefitscout/internal/profile/models"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	audit "benefitscout/pkg/platform/audit"
	"benefitscout/pkg/platform/sentinel"
	"benefitscout/pkg/requestcontext"
)

type Store interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Profile, error)
	// Execute hands mutate the current profile, or nil when none is stored,
	// and saves what it returns. The read and the write are atomic per user.
	Execute(ctx context.Context, userID id.UserID, mutate func(current *models.Profile) (*models.Profile, error)) (*models.Profile, error)
	Delete(ctx context.Context, userID id.UserID) error
}

type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditPublisher sets a fail-closed publisher; an update is rejected
// when its audit record cannot be written.
func WithAuditPublisher(p audit.Emitter) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get returns the stored profile for userID.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing user")
	}
	p, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return p, nil
}

// Update merges a partial change set into the stored profile, creating it
// on first write.
func (s *Service) Update(ctx context.Context, userID id.UserID, update models.Update) (*models.Profile, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing user")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var action audit.AuditEvent
	p, err := s.store.Execute(ctx, userID, func(current *models.Profile) (*models.Profile, error) {
		action = audit.EventProfileUpdated
		if current == nil {
			current = models.NewProfile(userID, now)
			action = audit.EventProfileCreated
		}
		current.Apply(update, now)

		if err := s.emit(ctx, userID, action); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record profile change")
		}
		return current, nil
	})
	if err != nil {
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save profile")
	}

	s.logger.InfoContext(ctx, string(action),
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"onboarding_completed", p.OnboardingCompleted,
	)
	return p, nil
}

// Delete removes the stored profile. The deletion is audited before the
// record is removed, and is refused when the audit write fails.
func (s *Service) Delete(ctx context.Context, userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "missing user")
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.emit(ctx, userID, audit.EventProfileDeleted); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record profile change")
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete profile")
	}

	s.logger.InfoContext(ctx, string(audit.EventProfileDeleted),
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
	)
	return nil
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action audit.AuditEvent) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   userID.String(),
		Action:    string(action),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
}
