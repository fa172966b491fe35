package handler

import (
	"time"

	"benefitscout/internal/benefits/directory"
	"benefitscout/internal/benefits/formula"
	"benefitscout/internal/eligibility"
	"benefitscout/internal/eligibility/service"
)

type ProgramResultResponse struct {
	Eligible        bool    `json:"eligible"`
	EstimatedAmount float64 `json:"estimatedAmount"`
	Reason          string  `json:"reason"`
}

type SummaryResponse struct {
	EligibleCount         int     `json:"eligibleCount"`
	TotalEstimatedMonthly float64 `json:"totalEstimatedMonthly"`
	BenefitYear           int     `json:"benefitYear"`
}

// EligibilityResponse is returned by GET /eligibility and POST /eligibility/evaluate.
type EligibilityResponse struct {
	Results     map[string]ProgramResultResponse `json:"results"`
	Summary     SummaryResponse                  `json:"summary"`
	EvaluatedAt time.Time                        `json:"evaluatedAt"`
}

// CalculateResponse carries either an amount or a Medicaid threshold test.
type CalculateResponse struct {
	Amount    *float64 `json:"amount,omitempty"`
	Eligible  *bool    `json:"eligible,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	FPL       *float64 `json:"fpl,omitempty"`
}

type CategoriesResponse struct {
	Categories []directory.Category `json:"categories"`
}

type DirectoryResponse struct {
	Category string              `json:"category"`
	Programs []directory.Program `json:"programs"`
}

func FromProgramResult(r eligibility.ProgramResult) ProgramResultResponse {
	return ProgramResultResponse{
		Eligible:        r.Eligible,
		EstimatedAmount: r.EstimatedAmount,
		Reason:          r.Reason,
	}
}

func FromReport(report *service.Report) *EligibilityResponse {
	results := make(map[string]ProgramResultResponse, len(report.Results))
	for programID, r := range report.Results {
		results[string(programID)] = FromProgramResult(r)
	}
	return &EligibilityResponse{
		Results: results,
		Summary: SummaryResponse{
			EligibleCount:         report.Summary.EligibleCount,
			TotalEstimatedMonthly: report.Summary.TotalEstimatedAmount,
			BenefitYear:           report.BenefitYear,
		},
		EvaluatedAt: report.EvaluatedAt,
	}
}

func FromCalculation(r eligibility.CalculationResult) *CalculateResponse {
	if r.Medicaid != nil {
		return fromMedicaid(*r.Medicaid)
	}
	return &CalculateResponse{Amount: r.Amount}
}

func fromMedicaid(m formula.MedicaidResult) *CalculateResponse {
	return &CalculateResponse{
		Eligible:  &m.Eligible,
		Threshold: &m.Threshold,
		FPL:       &m.FPL,
	}
}
