package handler

import (
	"strings"

	"benefitscout/internal/benefits/formula"
	"benefitscout/internal/eligibility"
	dErrors "benefitscout/pkg/domain-errors"
	strutil "benefitscout/pkg/platform/strings"
)

const maxProgramFilter = 32

// EvaluateRequest is the body for POST /eligibility/evaluate. Profile fields
// are not validated beyond decoding; the evaluator clamps malformed values.
type EvaluateRequest struct {
	CurrentIncome    float64  `json:"currentIncome"`
	HouseholdSize    int      `json:"householdSize"`
	Age              int      `json:"age"`
	HasDisability    bool     `json:"hasDisability"`
	IsVeteran        bool     `json:"isVeteran"`
	IsPregnant       bool     `json:"isPregnant"`
	NumberOfChildren int      `json:"numberOfChildren"`
	MaritalStatus    string   `json:"maritalStatus"`
	MonthlyRent      float64  `json:"monthlyRent"`
	Assets           float64  `json:"assets"`
	TotalWorkYears   int      `json:"totalWorkYears"`
	State            string   `json:"state"`
	Programs         []string `json:"programs,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Programs = strutil.DedupeAndTrim(r.Programs)
	if len(r.Programs) > maxProgramFilter {
		return dErrors.New(dErrors.CodeValidation, "too many programs requested")
	}
	r.MaritalStatus = strings.ToLower(strings.TrimSpace(r.MaritalStatus))
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
	return nil
}

func (r *EvaluateRequest) Profile() eligibility.Profile {
	return eligibility.Profile{
		CurrentIncome:    r.CurrentIncome,
		HouseholdSize:    r.HouseholdSize,
		Age:              r.Age,
		HasDisability:    r.HasDisability,
		IsVeteran:        r.IsVeteran,
		IsPregnant:       r.IsPregnant,
		NumberOfChildren: r.NumberOfChildren,
		MaritalStatus:    eligibility.MaritalStatus(r.MaritalStatus),
		MonthlyRent:      r.MonthlyRent,
		Assets:           r.Assets,
		TotalWorkYears:   r.TotalWorkYears,
		State:            r.State,
	}
}

// CalculateRequest is the body for POST /benefits/calculate.
type CalculateRequest struct {
	Type           string  `json:"type"`
	Income         float64 `json:"income"`
	HouseholdSize  int     `json:"householdSize"`
	State          string  `json:"state"`
	Age            int     `json:"age"`
	IsDisabled     bool    `json:"isDisabled"`
	Children       int     `json:"children"`
	FilingStatus   string  `json:"filingStatus"`
	FairMarketRent float64 `json:"fairMarketRent"`
}

// Validate implements httputil.Validatable. The type itself is checked by
// the evaluator so both paths report the same error.
func (r *CalculateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid benefit type")
	}
	r.FilingStatus = strings.ToLower(strings.TrimSpace(r.FilingStatus))
	if r.FilingStatus == "" {
		r.FilingStatus = string(formula.FilingSingle)
	}
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
	return nil
}

func (r *CalculateRequest) Input() eligibility.CalculationInput {
	return eligibility.CalculationInput{
		Type:           eligibility.CalculationType(r.Type),
		Income:         r.Income,
		HouseholdSize:  r.HouseholdSize,
		State:          r.State,
		Age:            r.Age,
		IsDisabled:     r.IsDisabled,
		Children:       r.Children,
		FilingStatus:   formula.FilingStatus(r.FilingStatus),
		FairMarketRent: r.FairMarketRent,
	}
}
