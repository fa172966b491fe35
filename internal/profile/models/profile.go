package models

import (
	"time"

	"benefitscout/internal/eligibility"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
)

type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentDisabled     EmploymentStatus = "disabled"
	EmploymentSelfEmployed EmploymentStatus = "self-employed"
)

func (e EmploymentStatus) IsValid() bool {
	switch e {
	case EmploymentEmployed, EmploymentUnemployed, EmploymentRetired, EmploymentDisabled, EmploymentSelfEmployed:
		return true
	}
	return false
}

// Profile is the stored household record for one user.
//
// Invariants:
//   - HouseholdSize is at least 1
//   - numeric amounts and counts are never negative
//   - MaritalStatus and EmploymentStatus are known values
//   - CreatedAt is immutable after construction
type Profile struct {
	UserID              id.UserID
	CurrentIncome       float64
	HouseholdSize       int
	Age                 int
	HasDisability       bool
	IsVeteran           bool
	IsPregnant          bool
	NumberOfChildren    int
	MaritalStatus       eligibility.MaritalStatus
	MonthlyRent         float64
	MonthlyUtilities    float64
	Assets              float64
	TotalWorkYears      int
	VeteranServiceYears int
	EmploymentStatus    EmploymentStatus
	State               string
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewProfile returns an empty profile with the same defaults a freshly
// registered user gets.
func NewProfile(userID id.UserID, now time.Time) *Profile {
	return &Profile{
		UserID:           userID,
		HouseholdSize:    1,
		MaritalStatus:    eligibility.MaritalSingle,
		EmploymentStatus: EmploymentEmployed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Household projects the stored record onto the evaluator's input shape.
func (p *Profile) Household() eligibility.Profile {
	return eligibility.Profile{
		CurrentIncome:    p.CurrentIncome,
		HouseholdSize:    p.HouseholdSize,
		Age:              p.Age,
		HasDisability:    p.HasDisability,
		IsVeteran:        p.IsVeteran,
		IsPregnant:       p.IsPregnant,
		NumberOfChildren: p.NumberOfChildren,
		MaritalStatus:    p.MaritalStatus,
		MonthlyRent:      p.MonthlyRent,
		Assets:           p.Assets,
		TotalWorkYears:   p.TotalWorkYears,
		State:            p.State,
	}
}

// Update is a partial change set. Nil fields keep their stored value.
type Update struct {
	CurrentIncome       *float64
	HouseholdSize       *int
	Age                 *int
	HasDisability       *bool
	IsVeteran           *bool
	IsPregnant          *bool
	NumberOfChildren    *int
	MaritalStatus       *eligibility.MaritalStatus
	MonthlyRent         *float64
	MonthlyUtilities    *float64
	Assets              *float64
	TotalWorkYears      *int
	VeteranServiceYears *int
	EmploymentStatus    *EmploymentStatus
	State               *string
	OnboardingCompleted *bool
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u == Update{}
}

// Validate checks the fields that are present.
func (u Update) Validate() error {
	floats := []struct {
		name string
		v    *float64
	}{
		{"currentIncome", u.CurrentIncome},
		{"monthlyRent", u.MonthlyRent},
		{"monthlyUtilities", u.MonthlyUtilities},
		{"assets", u.Assets},
	}
	for _, f := range floats {
		if f.v != nil && !(*f.v >= 0) {
			return dErrors.New(dErrors.CodeValidation, f.name+" must be a non-negative number")
		}
	}
	ints := []struct {
		name string
		v    *int
	}{
		{"age", u.Age},
		{"numberOfChildren", u.NumberOfChildren},
		{"totalWorkYears", u.TotalWorkYears},
		{"veteranServiceYears", u.VeteranServiceYears},
	}
	for _, f := range ints {
		if f.v != nil && *f.v < 0 {
			return dErrors.New(dErrors.CodeValidation, f.name+" must not be negative")
		}
	}
	if u.HouseholdSize != nil && *u.HouseholdSize < 1 {
		return dErrors.New(dErrors.CodeValidation, "householdSize must be at least 1")
	}
	if u.MaritalStatus != nil && !u.MaritalStatus.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "maritalStatus must be one of single, married, divorced, widowed")
	}
	if u.EmploymentStatus != nil && !u.EmploymentStatus.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "employmentStatus is not recognized")
	}
	if u.State != nil && len(*u.State) > 64 {
		return dErrors.New(dErrors.CodeValidation, "state must be at most 64 characters")
	}
	return nil
}

// Apply merges u into p. Call Validate first.
func (p *Profile) Apply(u Update, now time.Time) {
	setFloat(&p.CurrentIncome, u.CurrentIncome)
	setInt(&p.HouseholdSize, u.HouseholdSize)
	setInt(&p.Age, u.Age)
	setBool(&p.HasDisability, u.HasDisability)
	setBool(&p.IsVeteran, u.IsVeteran)
	setBool(&p.IsPregnant, u.IsPregnant)
	setInt(&p.NumberOfChildren, u.NumberOfChildren)
	if u.MaritalStatus != nil {
		p.MaritalStatus = *u.MaritalStatus
	}
	setFloat(&p.MonthlyRent, u.MonthlyRent)
	setFloat(&p.MonthlyUtilities, u.MonthlyUtilities)
	setFloat(&p.Assets, u.Assets)
	setInt(&p.TotalWorkYears, u.TotalWorkYears)
	setInt(&p.VeteranServiceYears, u.VeteranServiceYears)
	if u.EmploymentStatus != nil {
		p.EmploymentStatus = *u.EmploymentStatus
	}
	if u.State != nil {
		p.State = *u.State
	}
	setBool(&p.OnboardingCompleted, u.OnboardingCompleted)
	p.UpdatedAt = now
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
