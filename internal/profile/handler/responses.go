package handler

import (
	"time"

	"benefitscout/internal/profile/models"
)

type ProfileResponse struct {
	UserID              string    `json:"userId"`
	CurrentIncome       float64   `json:"currentIncome"`
	HouseholdSize       int       `json:"householdSize"`
	Age                 int       `json:"age"`
	HasDisability       bool      `json:"hasDisability"`
	IsVeteran           bool      `json:"isVeteran"`
	IsPregnant          bool      `json:"isPregnant"`
	NumberOfChildren    int       `json:"numberOfChildren"`
	MaritalStatus       string    `json:"maritalStatus"`
	MonthlyRent         float64   `json:"monthlyRent"`
	MonthlyUtilities    float64   `json:"monthlyUtilities"`
	Assets              float64   `json:"assets"`
	TotalWorkYears      int       `json:"totalWorkYears"`
	VeteranServiceYears int       `json:"veteranServiceYears"`
	EmploymentStatus    string    `json:"employmentStatus"`
	State               string    `json:"state"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func FromProfile(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID:              p.UserID.String(),
		CurrentIncome:       p.CurrentIncome,
		HouseholdSize:       p.HouseholdSize,
		Age:                 p.Age,
		HasDisability:       p.HasDisability,
		IsVeteran:           p.IsVeteran,
		IsPregnant:          p.IsPregnant,
		NumberOfChildren:    p.NumberOfChildren,
		MaritalStatus:       string(p.MaritalStatus),
		MonthlyRent:         p.MonthlyRent,
		MonthlyUtilities:    p.MonthlyUtilities,
		Assets:              p.Assets,
		TotalWorkYears:      p.TotalWorkYears,
		VeteranServiceYears: p.VeteranServiceYears,
		EmploymentStatus:    string(p.EmploymentStatus),
		State:               p.State,
		OnboardingCompleted: p.OnboardingCompleted,
		UpdatedAt:           p.UpdatedAt,
	}
}
