package requestlimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"benefitscout/internal/ratelimit/models"
	"benefitscout/internal/ratelimit/store/bucket"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	audit "benefitscout/pkg/platform/audit"
	"benefitscout/pkg/platform/audit/publishers/compliance"
	auditmemory "benefitscout/pkg/platform/audit/store/memory"
)

type brokenBuckets struct{}

func (brokenBuckets) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("redis down")
}

type RequestLimitSuite struct {
	suite.Suite
	audits *auditmemory.InMemoryStore
	svc    *Service
	ctx    context.Context
}

func TestRequestLimitSuite(t *testing.T) {
	suite.Run(t, new(RequestLimitSuite))
}

func (s *RequestLimitSuite) SetupTest() {
	s.ctx = context.Background()
	s.audits = auditmemory.NewInMemoryStore()
	svc, err := New(bucket.NewInMemoryBucketStore(),
		WithLimits(Limits{models.ClassRead: {RequestsPerWindow: 1, Window: time.Minute}}),
		WithAuditPublisher(compliance.New(s.audits)),
	)
	s.Require().NoError(err)
	s.svc = svc
}

// =============================================================================
// Construction
// =============================================================================

func (s *RequestLimitSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Error(err)
}

func (s *RequestLimitSuite) TestDefaultLimits() {
	limits := DefaultLimits(60)
	s.Equal(60, limits[models.ClassRead].RequestsPerWindow)
	s.Equal(30, limits[models.ClassWrite].RequestsPerWindow)
	s.Equal(120, limits[models.ClassEvaluate].RequestsPerWindow)

	s.Equal(1, DefaultLimits(0)[models.ClassWrite].RequestsPerWindow)
}

// =============================================================================
// Checks
// =============================================================================

func (s *RequestLimitSuite) TestCheckUserAuditsRejections() {
	userID := id.NewUserID()

	res, err := s.svc.CheckUser(s.ctx, userID, models.ClassRead)
	s.Require().NoError(err)
	s.True(res.Allowed)

	res, err = s.svc.CheckUser(s.ctx, userID, models.ClassRead)
	s.Require().NoError(err)
	s.False(res.Allowed)

	events, err := s.audits.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventRateLimitExceeded), events[0].Action)
	s.Equal(audit.CategorySecurity, events[0].Category)
}

func (s *RequestLimitSuite) TestCheckIPDoesNotAudit() {
	_, err := s.svc.CheckIP(s.ctx, "192.0.2.1", models.ClassRead)
	s.Require().NoError(err)
	res, err := s.svc.CheckIP(s.ctx, "192.0.2.1", models.ClassRead)
	s.Require().NoError(err)
	s.False(res.Allowed)

	events, err := s.audits.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *RequestLimitSuite) TestUnconfiguredClassIsDenied() {
	res, err := s.svc.CheckUser(s.ctx, id.NewUserID(), models.ClassWrite)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(60, res.RetryAfter)
}

func (s *RequestLimitSuite) TestStoreErrorsAreInternal() {
	svc, err := New(brokenBuckets{})
	s.Require().NoError(err)

	_, err = svc.CheckUser(s.ctx, id.NewUserID(), models.ClassRead)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
