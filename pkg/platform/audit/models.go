package audit

import (
	"context"
	"time"

	id "benefitscout/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers changes to the household record that later
	// determinations depend on. These must be persisted before the change is acknowledged.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers abuse signals such as throttled callers.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine reads and evaluations. Can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    id.UserID     `json:"user_id"`
	Subject   string        `json:"subject,omitempty"`
	Action    string        `json:"action"`
	Decision  string        `json:"decision,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	// Profile events
	EventProfileCreated AuditEvent = "profile_created"
	EventProfileUpdated AuditEvent = "profile_updated"
	EventProfileDeleted AuditEvent = "profile_deleted"

	// Eligibility events
	EventEligibilityChecked   AuditEvent = "eligibility_checked"
	EventEligibilityEvaluated AuditEvent = "eligibility_evaluated"
	EventBenefitCalculated    AuditEvent = "benefit_calculated"

	// Rate limit events
	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventProfileCreated: CategoryCompliance,
	EventProfileUpdated: CategoryCompliance,
	EventProfileDeleted: CategoryCompliance,

	EventRateLimitExceeded: CategorySecurity,

	EventEligibilityChecked:   CategoryOperations,
	EventEligibilityEvaluated: CategoryOperations,
	EventBenefitCalculated:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is the narrow port services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
