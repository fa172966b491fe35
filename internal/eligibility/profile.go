package eligibility

import "benefitscout/internal/benefits/formula"

// MaritalStatus is the self-reported marital status. It is used only as a proxy for tax
// filing status.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

// IsValid reports whether m is one of the known statuses.
func (m MaritalStatus) IsValid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// FilingStatus maps marital status onto the tax filing status the EITC formula accepts.
func (m MaritalStatus) FilingStatus() formula.FilingStatus {
	return formula.FilingStatus(m)
}

// Profile is a household's self-reported financial and demographic data. Income is annual
// gross countable income in US dollars; rent is monthly.
//
// State is carried for the caller's benefit but no threshold varies by it.
type Profile struct {
	CurrentIncome    float64
	HouseholdSize    int
	Age              int
	HasDisability    bool
	IsVeteran        bool
	IsPregnant       bool
	NumberOfChildren int
	MaritalStatus    MaritalStatus
	MonthlyRent      float64
	Assets           float64
	TotalWorkYears   int
	State            string
}

// Normalize returns a copy of p with malformed values clamped to the nearest valid value:
// household size to at least 1, negative (or NaN) amounts and counts to 0, and unknown
// marital status to single. Evaluation never fails on a sparse or malformed profile.
func (p Profile) Normalize() Profile {
	n := p
	if n.HouseholdSize < 1 {
		n.HouseholdSize = 1
	}
	n.CurrentIncome = nonNegative(n.CurrentIncome)
	n.MonthlyRent = nonNegative(n.MonthlyRent)
	n.Assets = nonNegative(n.Assets)
	n.Age = max(n.Age, 0)
	n.NumberOfChildren = max(n.NumberOfChildren, 0)
	n.TotalWorkYears = max(n.TotalWorkYears, 0)
	if !n.MaritalStatus.IsValid() {
		n.MaritalStatus = MaritalSingle
	}
	return n
}

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}
