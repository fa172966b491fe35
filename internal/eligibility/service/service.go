// Package service runs eligibility evaluations on behalf of HTTP callers. It
// loads the stored household profile, enforces the onboarding gate, and
// records audit events, metrics and spans around the pure evaluator.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"benefitscout/internal/eligibility"
	"benefitscout/internal/eligibility/metrics"
	"benefitscout/internal/eligibility/ports"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	audit "benefitscout/pkg/platform/audit"
	"benefitscout/pkg/requestcontext"
)

var tracer = otel.Tracer("benefitscout.eligibility")

const (
	modeStored     = "stored"
	modeStateless  = "stateless"
	modeCalculator = "calculator"
)

// Report is an evaluation result set with its summary.
type Report struct {
	Results     eligibility.Results
	Summary     eligibility.Summary
	BenefitYear int
	EvaluatedAt time.Time
}

type Service struct {
	evaluator *eligibility.Evaluator
	profiles  ports.ProfilePort
	auditor   ports.AuditPort
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditor sets the audit sink. Eligibility events are operational, so a
// failed write is logged and the request still succeeds.
func WithAuditor(a ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(evaluator *eligibility.Evaluator, profiles ports.ProfilePort, opts ...Option) *Service {
	s := &Service{evaluator: evaluator, profiles: profiles}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// BenefitYear returns the year of the parameters the evaluator was built with.
func (s *Service) BenefitYear() int {
	return s.evaluator.BenefitYear()
}

// CheckAll evaluates every program against the caller's stored profile.
func (s *Service) CheckAll(ctx context.Context, userID id.UserID) (*Report, error) {
	ctx, span := tracer.Start(ctx, "eligibility.CheckAll")
	defer span.End()

	household, err := s.loadHousehold(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	report := s.evaluate(ctx, modeStored, household.Profile)
	s.emit(ctx, userID, audit.EventEligibilityChecked, "all", report.Summary)
	span.SetAttributes(attribute.Int("eligibility.eligible_count", report.Summary.EligibleCount))
	span.SetStatus(codes.Ok, "")
	return report, nil
}

// CheckOne evaluates a single program against the caller's stored profile.
// The program id is validated before the profile is read.
func (s *Service) CheckOne(ctx context.Context, userID id.UserID, program string) (eligibility.ProgramID, eligibility.ProgramResult, error) {
	ctx, span := tracer.Start(ctx, "eligibility.CheckOne",
		trace.WithAttributes(attribute.String("eligibility.program", program)),
	)
	defer span.End()

	programID, err := eligibility.ParseProgramID(program)
	if err != nil {
		recordError(span, err)
		return "", eligibility.ProgramResult{}, err
	}

	household, err := s.loadHousehold(ctx, userID)
	if err != nil {
		recordError(span, err)
		return "", eligibility.ProgramResult{}, err
	}

	start := time.Now()
	results, failed := s.evaluator.Evaluate(household.Profile)
	s.metrics.ObserveEvaluateLatency(modeStored, time.Since(start))
	s.reportRuleErrors(ctx, modeStored, failed)
	result := results[programID]
	s.metrics.IncrementOutcome(string(programID), result.Eligible)

	s.emit(ctx, userID, audit.EventEligibilityChecked, string(programID), eligibility.Results{programID: result}.Summary())
	span.SetAttributes(attribute.Bool("eligibility.eligible", result.Eligible))
	span.SetStatus(codes.Ok, "")
	return programID, result, nil
}

// Evaluate screens a caller-supplied profile without reading or writing the
// store. When programs is non-empty only those programs are returned; an
// unknown id fails the whole request.
func (s *Service) Evaluate(ctx context.Context, profile eligibility.Profile, programs []string) (*Report, error) {
	ctx, span := tracer.Start(ctx, "eligibility.Evaluate",
		trace.WithAttributes(attribute.Int("eligibility.program_filter", len(programs))),
	)
	defer span.End()

	ids := make([]eligibility.ProgramID, 0, len(programs))
	for _, p := range programs {
		programID, err := eligibility.ParseProgramID(p)
		if err != nil {
			recordError(span, err)
			return nil, err
		}
		ids = append(ids, programID)
	}

	report := s.evaluate(ctx, modeStateless, profile)
	if len(ids) > 0 {
		report.Results = report.Results.Filter(ids...)
		report.Summary = report.Results.Summary()
	}

	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		s.emit(ctx, userID, audit.EventEligibilityEvaluated, "screening", report.Summary)
	}
	span.SetStatus(codes.Ok, "")
	return report, nil
}

// Calculate runs one standalone formula from raw inputs.
func (s *Service) Calculate(ctx context.Context, in eligibility.CalculationInput) (eligibility.CalculationResult, error) {
	_, span := tracer.Start(ctx, "eligibility.Calculate",
		trace.WithAttributes(attribute.String("benefit.type", string(in.Type))),
	)
	defer span.End()

	start := time.Now()
	result, err := s.evaluator.Calculate(in)
	if err != nil {
		recordError(span, err)
		return eligibility.CalculationResult{}, err
	}
	s.metrics.ObserveEvaluateLatency(modeCalculator, time.Since(start))
	s.metrics.IncrementCalculation(string(result.Type))

	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		s.emit(ctx, userID, audit.EventBenefitCalculated, string(result.Type), eligibility.Summary{})
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (s *Service) loadHousehold(ctx context.Context, userID id.UserID) (*ports.Household, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	household, err := s.profiles.HouseholdProfile(ctx, userID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementIncompleteProfile()
			return nil, dErrors.New(dErrors.CodeIncompleteProfile, "Please complete onboarding first")
		}
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	if !household.OnboardingCompleted {
		s.metrics.IncrementIncompleteProfile()
		return nil, dErrors.New(dErrors.CodeIncompleteProfile, "Please complete onboarding first")
	}
	return household, nil
}

func (s *Service) evaluate(ctx context.Context, mode string, profile eligibility.Profile) *Report {
	start := time.Now()
	results, failed := s.evaluator.Evaluate(profile)
	s.metrics.ObserveEvaluateLatency(mode, time.Since(start))
	s.reportRuleErrors(ctx, mode, failed)

	for programID, res := range results {
		s.metrics.IncrementOutcome(string(programID), res.Eligible)
	}
	return &Report{
		Results:     results,
		Summary:     results.Summary(),
		BenefitYear: s.evaluator.BenefitYear(),
		EvaluatedAt: requestcontext.Now(ctx),
	}
}

// reportRuleErrors logs and counts rules that panicked. The affected programs
// are already degraded to ReasonEvaluationError in the results.
func (s *Service) reportRuleErrors(ctx context.Context, mode string, failed []eligibility.RuleError) {
	for _, ruleErr := range failed {
		s.metrics.IncrementRuleError(string(ruleErr.Program))
		s.logger.ErrorContext(ctx, "eligibility rule failed",
			"request_id", requestcontext.RequestID(ctx),
			"program", ruleErr.Program,
			"mode", mode,
			"error", ruleErr.Error(),
		)
	}
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action audit.AuditEvent, subject string, summary eligibility.Summary) {
	if s.auditor == nil {
		return
	}
	decision := ""
	if action != audit.EventBenefitCalculated {
		decision = eligibleDecision(summary.EligibleCount)
	}
	err := s.auditor.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   subject,
		Action:    string(action),
		Decision:  decision,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit eligibility audit event",
			"request_id", requestcontext.RequestID(ctx),
			"action", action,
			"error", err,
		)
	}
}

func eligibleDecision(count int) string {
	if count > 0 {
		return "eligible"
	}
	return "not_eligible"
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
