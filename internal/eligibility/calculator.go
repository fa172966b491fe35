package eligibility

import (
	"strings"

	"benefitscout/internal/benefits/formula"
	dErrors "benefitscout/pkg/domain-errors"
)

// CalculationType selects a standalone formula for the calculator.
type CalculationType string

const (
	CalculateSSI      CalculationType = "ssi"
	CalculateSNAP     CalculationType = "snap"
	CalculateSection8 CalculationType = "section8"
	CalculateEITC     CalculationType = "eitc"
	CalculateMedicaid CalculationType = "medicaid"
)

// ParseCalculationType validates a calculator type.
func ParseCalculationType(s string) (CalculationType, error) {
	switch t := CalculationType(strings.TrimSpace(s)); t {
	case CalculateSSI, CalculateSNAP, CalculateSection8, CalculateEITC, CalculateMedicaid:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid benefit type")
}

// CalculationInput carries raw scalars for a single formula, without a stored profile.
// State is accepted for parity with the profile but does not affect any formula.
type CalculationInput struct {
	Type           CalculationType
	Income         float64
	HouseholdSize  int
	State          string
	Age            int
	IsDisabled     bool
	Children       int
	FilingStatus   formula.FilingStatus
	FairMarketRent float64
}

// CalculationResult holds either an amount or, for Medicaid, a threshold test.
type CalculationResult struct {
	Type     CalculationType
	Amount   *float64
	Medicaid *formula.MedicaidResult
}

// Calculate runs the formula named by in.Type. Inputs are clamped like profile fields.
// The Medicaid test here never applies the pregnancy multiplier.
func (e *Evaluator) Calculate(in CalculationInput) (CalculationResult, error) {
	t, err := ParseCalculationType(string(in.Type))
	if err != nil {
		return CalculationResult{}, err
	}
	in.Type = t

	income := nonNegative(in.Income)
	size := max(in.HouseholdSize, 1)
	children := max(in.Children, 0)
	result := CalculationResult{Type: in.Type}

	var amount float64
	switch in.Type {
	case CalculateSSI:
		amount = e.calc.SSI(income, max(in.Age, 0), in.IsDisabled)
	case CalculateSNAP:
		amount = e.calc.SNAP(size, income)
	case CalculateSection8:
		amount = e.calc.Section8(income, nonNegative(in.FairMarketRent))
	case CalculateEITC:
		amount = e.calc.EITC(income, children, in.FilingStatus)
	case CalculateMedicaid:
		m := e.calc.Medicaid(income, size, false, in.IsDisabled)
		result.Medicaid = &m
		return result, nil
	}
	result.Amount = &amount
	return result, nil
}
