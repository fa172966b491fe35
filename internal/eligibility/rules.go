package eligibility

import (
	"fmt"
	"strconv"

	"benefitscout/internal/benefits/formula"
)

// ReasonEvaluationError is reported for a program whose rule failed unexpectedly.
const ReasonEvaluationError = "Eligibility could not be determined"

// facts is the per-evaluation input shared by every rule: the normalized profile and the
// poverty baseline computed once for the household.
type facts struct {
	Profile
	fpl    float64
	calc   *formula.Calculator
	params *formula.Parameters
}

// rule pairs a program's predicate with its amount formula. check reports eligibility and
// the branch taken; amount is consulted only when check passes and may be nil when no
// amount is modeled.
type rule struct {
	id     ProgramID
	check  func(f *facts) (bool, string)
	amount func(f *facts) float64
}

// rules is the program table, one entry per catalog id, in catalog order.
var rules = []rule{
	{id: ProgramSSI, check: checkSSI, amount: func(f *facts) float64 {
		return f.calc.SSI(f.CurrentIncome, f.Age, f.HasDisability)
	}},
	{id: ProgramSSDI, check: checkSSDI, amount: func(f *facts) float64 {
		return f.params.SSDI.MonthlyAmount
	}},
	{id: ProgramSNAP, check: checkSNAP, amount: func(f *facts) float64 {
		return f.calc.SNAP(f.HouseholdSize, f.CurrentIncome)
	}},
	{id: ProgramMedicaid, check: checkMedicaid},
	{id: ProgramMedicare, check: checkMedicare},
	{id: ProgramACASubsidies, check: checkACA, amount: func(f *facts) float64 {
		return formula.RoundHalfUp(f.MonthlyRent * f.params.ACA.PremiumRentShare)
	}},
	{id: ProgramTRICARE, check: func(f *facts) (bool, string) {
		return veteranOnly(f, "Military service on record", "Military service required")
	}},
	{id: ProgramVAHealth, check: func(f *facts) (bool, string) {
		return veteranOnly(f, "Veterans with qualifying service", "Veteran status required")
	}},
	{id: ProgramSection8, check: checkSection8, amount: section8Amount},
	{id: ProgramPublicHousing, check: checkPublicHousing, amount: func(f *facts) float64 {
		return formula.RoundHalfUp(f.CurrentIncome * f.params.PublicHousing.RentShare / 12)
	}},
	{id: ProgramHUDVASH, check: checkHUDVASH, amount: section8Amount},
	{id: ProgramLIHEAP, check: checkLIHEAP, amount: func(f *facts) float64 {
		return f.params.LIHEAP.FlatAmount
	}},
	{id: ProgramWIC, check: checkWIC, amount: func(f *facts) float64 {
		return float64(f.NumberOfChildren) * f.params.WIC.PerChild
	}},
	{id: ProgramEITC, check: checkEITC, amount: func(f *facts) float64 {
		return f.calc.EITC(f.CurrentIncome, f.NumberOfChildren, f.MaritalStatus.FilingStatus())
	}},
	{id: ProgramCTC, check: checkCTC, amount: func(f *facts) float64 {
		return float64(f.NumberOfChildren) * f.params.CTC.PerChild
	}},
	{id: ProgramTANF, check: checkTANF, amount: func(f *facts) float64 {
		return float64(f.NumberOfChildren) * f.params.TANF.PerChild
	}},
}

// Income thresholds below are compared literally against annual CurrentIncome, including
// SSI's limit, which is a monthly figure. See DESIGN.md on the unit mismatch.

func checkSSI(f *facts) (bool, string) {
	p := f.params.SSI
	if f.Age < p.MinimumAge && !f.HasDisability {
		return false, fmt.Sprintf("Must be %d+ or disabled", p.MinimumAge)
	}
	if f.CurrentIncome >= p.IncomeLimit {
		return false, "Age or disability requirement met; income exceeds the " + dollars(p.IncomeLimit) + " SSI limit"
	}
	if f.Assets >= p.AssetLimit {
		return false, "Age or disability requirement met; assets exceed the " + dollars(p.AssetLimit) + " resource limit"
	}
	return true, "Age or disability requirement met"
}

func checkSSDI(f *facts) (bool, string) {
	years := f.params.SSDI.MinimumWorkYears
	switch {
	case !f.HasDisability:
		return false, "Requires a qualifying disability"
	case f.TotalWorkYears < years:
		return false, fmt.Sprintf("Requires %d+ years of work history", years)
	default:
		return true, fmt.Sprintf("Qualifying disability with %d+ years of work history", years)
	}
}

func checkSNAP(f *facts) (bool, string) {
	return withinFPL(f, f.params.SNAP.GrossIncomeLimitFPL)
}

func checkMedicaid(f *facts) (bool, string) {
	res := f.calc.Medicaid(f.CurrentIncome, f.HouseholdSize, f.IsPregnant, f.HasDisability)
	if !res.Eligible {
		return false, "Income exceeds Medicaid limits"
	}
	p := f.params.Medicaid
	switch {
	case f.IsPregnant:
		return true, "Income within " + percent(p.PregnantMultiplier) + " FPL pregnancy threshold"
	case f.HasDisability:
		return true, "Income within " + percent(p.DisabledMultiplier) + " FPL disability threshold"
	default:
		return true, "Income within " + percent(p.ExpansionMultiplier) + " FPL expansion threshold"
	}
}

func checkMedicare(f *facts) (bool, string) {
	switch {
	case f.Age >= f.params.Medicare.MinimumAge:
		return true, fmt.Sprintf("Age %d+", f.params.Medicare.MinimumAge)
	case f.HasDisability && f.TotalWorkYears >= f.params.SSDI.MinimumWorkYears:
		return true, "Disability with work history"
	case f.HasDisability:
		return false, fmt.Sprintf("Disability requires %d+ years of work history", f.params.SSDI.MinimumWorkYears)
	default:
		return false, "Not yet eligible"
	}
}

func checkACA(f *facts) (bool, string) {
	p := f.params.ACA
	lower, upper := f.fpl*p.LowerFPL, f.fpl*p.UpperFPL
	switch {
	case f.CurrentIncome < lower:
		return false, "Income below " + percent(p.LowerFPL) + " FPL"
	case f.CurrentIncome > upper:
		return false, "Income exceeds " + percent(p.UpperFPL) + " FPL"
	default:
		return true, "Income between " + percent(p.LowerFPL) + "-" + percent(p.UpperFPL) + " FPL qualifies for premium tax credits"
	}
}

func checkSection8(f *facts) (bool, string) {
	if f.CurrentIncome <= f.fpl*f.params.Section8.IncomeLimitFPL {
		return true, "Extremely low income"
	}
	return false, "Income exceeds " + percent(f.params.Section8.IncomeLimitFPL) + " FPL"
}

func checkPublicHousing(f *facts) (bool, string) {
	return withinFPL(f, f.params.PublicHousing.IncomeLimitFPL)
}

func checkHUDVASH(f *facts) (bool, string) {
	if !f.IsVeteran {
		return false, "Veteran status required"
	}
	limit := f.params.HUDVASH.IncomeLimitFPL
	if f.CurrentIncome > f.fpl*limit {
		return false, "Income exceeds " + percent(limit) + " FPL"
	}
	return true, "Veteran housing assistance"
}

func checkLIHEAP(f *facts) (bool, string) {
	return withinFPL(f, f.params.LIHEAP.IncomeLimitFPL)
}

func checkWIC(f *facts) (bool, string) {
	if !f.IsPregnant && f.NumberOfChildren == 0 {
		return false, "Requires pregnancy or children in the household"
	}
	return withinFPL(f, f.params.WIC.IncomeLimitFPL)
}

func checkEITC(f *facts) (bool, string) {
	ceiling := f.params.EITC.IncomeCeiling
	switch {
	case f.CurrentIncome <= 0:
		return false, "Requires earned income"
	case f.CurrentIncome >= ceiling:
		return false, "Income exceeds the " + dollars(ceiling) + " limit"
	default:
		return true, "Working individuals with earned income"
	}
}

func checkCTC(f *facts) (bool, string) {
	limit := f.params.CTC.IncomeLimit
	switch {
	case f.NumberOfChildren == 0:
		return false, "Requires qualifying children"
	case f.CurrentIncome >= limit:
		return false, "Income exceeds the " + dollars(limit) + " limit"
	default:
		return true, "Families with qualifying children"
	}
}

func checkTANF(f *facts) (bool, string) {
	if f.NumberOfChildren == 0 {
		return false, "Requires dependent children"
	}
	return withinFPL(f, f.params.TANF.IncomeLimitFPL)
}

func section8Amount(f *facts) float64 {
	rent := f.MonthlyRent
	if rent == 0 {
		rent = f.params.Section8.DefaultFairMarketRent
	}
	return f.calc.Section8(f.CurrentIncome, rent)
}

func veteranOnly(f *facts, yes, no string) (bool, string) {
	if f.IsVeteran {
		return true, yes
	}
	return false, no
}

// withinFPL is the common "income <= multiple of the poverty baseline" predicate.
func withinFPL(f *facts, multiple float64) (bool, string) {
	if f.CurrentIncome <= f.fpl*multiple {
		return true, "Income within " + percent(multiple) + " FPL"
	}
	return false, "Income exceeds " + percent(multiple) + " FPL"
}

func percent(multiple float64) string {
	return fmt.Sprintf("%.0f%%", multiple*100)
}

// dollars formats a whole-dollar amount with thousands separators, e.g. $63,000.
func dollars(v float64) string {
	s := strconv.FormatInt(int64(formula.RoundHalfUp(v)), 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "$" + s
}
