// Package formula computes benefit amounts and threshold tests from scalar inputs.
//
// Every function is pure and total: no I/O, no clock, no randomness. Thresholds come from
// the Parameters the Calculator was built with; none of them vary by state.
package formula

import "math"

// FilingStatus is the tax filing status. Marital status is used as its proxy.
type FilingStatus string

const (
	FilingSingle   FilingStatus = "single"
	FilingMarried  FilingStatus = "married"
	FilingDivorced FilingStatus = "divorced"
	FilingWidowed  FilingStatus = "widowed"
)

// MedicaidResult is the outcome of the Medicaid income threshold test.
type MedicaidResult struct {
	Eligible  bool    `json:"eligible"`
	Threshold float64 `json:"threshold"`
	FPL       float64 `json:"fpl"`
}

// Calculator evaluates program formulas against one benefit year's parameters.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	params Parameters
}

// New returns a Calculator for the given benefit year.
func New(params Parameters) *Calculator {
	return &Calculator{params: params}
}

// Parameters returns the benefit-year parameters backing the calculator.
func (c *Calculator) Parameters() Parameters {
	return c.params
}

// PovertyBaseline returns the annual federal poverty level for a household size. Sizes
// past the table extend linearly from its last row. Sizes below 1 are treated as 1.
func (c *Calculator) PovertyBaseline(householdSize int) float64 {
	return tableWithIncrement(c.params.PovertyGuidelines.BySize, c.params.PovertyGuidelines.AdditionalPerson, householdSize)
}

// SSI returns the monthly SSI payment: the federal benefit rate less countable income.
// Age and disability are eligibility preconditions checked by the caller; they do not
// change the amount.
func (c *Calculator) SSI(income float64, age int, hasDisability bool) float64 {
	p := c.params.SSI
	countable := math.Max(0, income-p.GeneralExclusion)
	return math.Max(0, p.FederalBenefitRate-countable)
}

// SNAP returns the monthly SNAP allotment: the household maximum less 30% of net income,
// where net income subtracts a flat per-person deduction.
func (c *Calculator) SNAP(householdSize int, grossIncome float64) float64 {
	p := c.params.SNAP
	maxBenefit := tableWithIncrement(p.MaxBenefitBySize, p.AdditionalPerson, householdSize)
	netIncome := math.Max(0, grossIncome-float64(atLeastOne(householdSize))*p.DeductionPerPerson)
	return math.Max(0, RoundHalfUp(maxBenefit-netIncome*p.BenefitReductionRate))
}

// Section8 returns the housing voucher subsidy: fair market rent less the tenant's share
// of adjusted income. The adjustment factor is an approximation of HUD's deductions.
func (c *Calculator) Section8(income, fairMarketRent float64) float64 {
	p := c.params.Section8
	tenantShare := income * p.AdjustedIncomeFactor * p.TenantRentShare
	return RoundHalfUp(math.Max(0, fairMarketRent-tenantShare))
}

// EITC returns the earned income tax credit. Children beyond the last schedule row use
// that row. Filing status is accepted but a single table serves every status.
func (c *Calculator) EITC(income float64, children int, filingStatus FilingStatus) float64 {
	p := c.params.EITC
	idx := children
	if idx < 0 {
		idx = 0
	}
	if idx > len(p.Schedules)-1 {
		idx = len(p.Schedules) - 1
	}
	s := p.Schedules[idx]

	switch {
	case income > s.PhaseOutEnd:
		return 0
	case income <= s.PhaseOutStart:
		return s.MaxCredit
	default:
		reduction := (income - s.PhaseOutStart) * p.PhaseOutRate
		return math.Max(0, RoundHalfUp(s.MaxCredit-reduction))
	}
}

// Medicaid tests income against the expansion-state threshold for the household, raised
// for pregnancy (highest) or disability.
func (c *Calculator) Medicaid(income float64, householdSize int, isPregnant, isDisabled bool) MedicaidResult {
	p := c.params.Medicaid
	fpl := c.PovertyBaseline(householdSize)

	multiplier := p.ExpansionMultiplier
	switch {
	case isPregnant:
		multiplier = p.PregnantMultiplier
	case isDisabled:
		multiplier = p.DisabledMultiplier
	}

	threshold := fpl * multiplier
	return MedicaidResult{
		Eligible:  income <= threshold,
		Threshold: threshold,
		FPL:       fpl,
	}
}

// RoundHalfUp rounds to the nearest whole dollar with halves going up.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func tableWithIncrement(table []float64, increment float64, size int) float64 {
	size = atLeastOne(size)
	if size <= len(table) {
		return table[size-1]
	}
	return table[len(table)-1] + float64(size-len(table))*increment
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
