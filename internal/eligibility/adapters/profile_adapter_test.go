package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitscout/internal/profile/models"
	"benefitscout/internal/profile/service"
	"benefitscout/internal/profile/store"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
)

func TestProfileAdapter(t *testing.T) {
	ctx := context.Background()
	profiles := service.New(store.NewInMemory())
	adapter := NewProfileAdapter(profiles)
	userID := id.NewUserID()

	t.Run("missing profile keeps the not_found code", func(t *testing.T) {
		_, err := adapter.HouseholdProfile(ctx, userID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("projects the stored profile", func(t *testing.T) {
		income := 24000.0
		done := true
		_, err := profiles.Update(ctx, userID, models.Update{CurrentIncome: &income, OnboardingCompleted: &done})
		require.NoError(t, err)

		h, err := adapter.HouseholdProfile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 24000.0, h.Profile.CurrentIncome)
		assert.Equal(t, 1, h.Profile.HouseholdSize)
		assert.True(t, h.OnboardingCompleted)
	})
}
