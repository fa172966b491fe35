package handler

import (
	"strings"

	"benefitscout/internal/eligibility"
	"benefitscout/internal/profile/models"
	dErrors "benefitscout/pkg/domain-errors"
)

// UpdateProfileRequest is the body for PUT /user/profile. Absent fields keep
// their stored value.
type UpdateProfileRequest struct {
	CurrentIncome       *float64 `json:"currentIncome"`
	HouseholdSize       *int     `json:"householdSize"`
	Age                 *int     `json:"age"`
	HasDisability       *bool    `json:"hasDisability"`
	IsVeteran           *bool    `json:"isVeteran"`
	IsPregnant          *bool    `json:"isPregnant"`
	NumberOfChildren    *int     `json:"numberOfChildren"`
	MaritalStatus       *string  `json:"maritalStatus"`
	MonthlyRent         *float64 `json:"monthlyRent"`
	MonthlyUtilities    *float64 `json:"monthlyUtilities"`
	Assets              *float64 `json:"assets"`
	TotalWorkYears      *int     `json:"totalWorkYears"`
	VeteranServiceYears *int     `json:"veteranServiceYears"`
	EmploymentStatus    *string  `json:"employmentStatus"`
	State               *string  `json:"state"`
	OnboardingCompleted *bool    `json:"onboardingCompleted"`

	update models.Update
}

// Validate implements httputil.Validatable.
func (r *UpdateProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	u := models.Update{
		CurrentIncome:       r.CurrentIncome,
		HouseholdSize:       r.HouseholdSize,
		Age:                 r.Age,
		HasDisability:       r.HasDisability,
		IsVeteran:           r.IsVeteran,
		IsPregnant:          r.IsPregnant,
		NumberOfChildren:    r.NumberOfChildren,
		MonthlyRent:         r.MonthlyRent,
		MonthlyUtilities:    r.MonthlyUtilities,
		Assets:              r.Assets,
		TotalWorkYears:      r.TotalWorkYears,
		VeteranServiceYears: r.VeteranServiceYears,
		OnboardingCompleted: r.OnboardingCompleted,
	}
	if r.MaritalStatus != nil {
		m := eligibility.MaritalStatus(strings.ToLower(strings.TrimSpace(*r.MaritalStatus)))
		u.MaritalStatus = &m
	}
	if r.EmploymentStatus != nil {
		e := models.EmploymentStatus(strings.ToLower(strings.TrimSpace(*r.EmploymentStatus)))
		u.EmploymentStatus = &e
	}
	if r.State != nil {
		st := strings.ToUpper(strings.TrimSpace(*r.State))
		u.State = &st
	}
	if u.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "at least one profile field is required")
	}
	if err := u.Validate(); err != nil {
		return err
	}
	r.update = u
	return nil
}

// ToUpdate returns the parsed change set. Only valid after Validate.
func (r *UpdateProfileRequest) ToUpdate() models.Update {
	return r.update
}
