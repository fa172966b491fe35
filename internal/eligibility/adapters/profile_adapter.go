package adapters

import (
	"context"

	"benefitscout/internal/eligibility/ports"
	profileModels "benefitscout/internal/profile/models"
	id "benefitscout/pkg/domain"
)

type profileGetter interface {
	Get(ctx context.Context, userID id.UserID) (*profileModels.Profile, error)
}

// ProfileAdapter implements ports.ProfilePort on top of the profile service.
type ProfileAdapter struct {
	profiles profileGetter
}

func NewProfileAdapter(profiles profileGetter) ports.ProfilePort {
	return &ProfileAdapter{profiles: profiles}
}

func (a *ProfileAdapter) HouseholdProfile(ctx context.Context, userID id.UserID) (*ports.Household, error) {
	p, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.Household{
		Profile:             p.Household(),
		OnboardingCompleted: p.OnboardingCompleted,
	}, nil
}
