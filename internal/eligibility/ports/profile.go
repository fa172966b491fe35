package ports

import (
	"context"

	"benefitscout/internal/eligibility"
	id "benefitscout/pkg/domain"
)

// ProfilePort reads the stored household profile for a user.
// Implementations return a dErrors not_found error when none exists.
type ProfilePort interface {
	HouseholdProfile(ctx context.Context, userID id.UserID) (*Household, error)
}

// Household is the evaluator input plus the onboarding gate.
type Household struct {
	Profile             eligibility.Profile
	OnboardingCompleted bool
}
