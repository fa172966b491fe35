package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitscout/internal/eligibility"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func TestNewProfileDefaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NewProfile(id.NewUserID(), now)

	assert.Equal(t, 1, p.HouseholdSize)
	assert.Equal(t, eligibility.MaritalSingle, p.MaritalStatus)
	assert.Equal(t, EmploymentEmployed, p.EmploymentStatus)
	assert.False(t, p.OnboardingCompleted)
	assert.Equal(t, now, p.CreatedAt)
}

func TestApplyMergesOnlyPresentFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	p := NewProfile(id.NewUserID(), created)
	p.CurrentIncome = 12000
	p.Age = 66

	p.Apply(Update{
		MonthlyRent:         ptr(900.0),
		IsVeteran:           ptr(true),
		OnboardingCompleted: ptr(true),
	}, later)

	assert.Equal(t, 12000.0, p.CurrentIncome)
	assert.Equal(t, 66, p.Age)
	assert.Equal(t, 900.0, p.MonthlyRent)
	assert.True(t, p.IsVeteran)
	assert.True(t, p.OnboardingCompleted)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestUpdateValidate(t *testing.T) {
	tests := []struct {
		name    string
		update  Update
		wantErr bool
	}{
		{"empty update", Update{}, false},
		{"zero income", Update{CurrentIncome: ptr(0.0)}, false},
		{"negative income", Update{CurrentIncome: ptr(-1.0)}, true},
		{"negative rent", Update{MonthlyRent: ptr(-5.0)}, true},
		{"negative age", Update{Age: ptr(-1)}, true},
		{"zero household", Update{HouseholdSize: ptr(0)}, true},
		{"unknown marital status", Update{MaritalStatus: ptr(eligibility.MaritalStatus("separated"))}, true},
		{"known marital status", Update{MaritalStatus: ptr(eligibility.MaritalWidowed)}, false},
		{"unknown employment", Update{EmploymentStatus: ptr(EmploymentStatus("gig"))}, true},
		{"self-employed", Update{EmploymentStatus: ptr(EmploymentSelfEmployed)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestHouseholdProjection(t *testing.T) {
	p := NewProfile(id.NewUserID(), time.Now())
	p.CurrentIncome = 18000
	p.HouseholdSize = 3
	p.NumberOfChildren = 1
	p.MonthlyUtilities = 120

	h := p.Household()
	assert.Equal(t, 18000.0, h.CurrentIncome)
	assert.Equal(t, 3, h.HouseholdSize)
	assert.Equal(t, 1, h.NumberOfChildren)
}

func TestUpdateIsEmpty(t *testing.T) {
	assert.True(t, Update{}.IsEmpty())
	assert.False(t, Update{Age: ptr(1)}.IsEmpty())
}
