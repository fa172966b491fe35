package formula

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed benefit_year_2024.yaml
var benefitYear2024 []byte

// Parameters is one benefit year's worth of federal constants. It is passed explicitly to
// the calculator and evaluator so a new year is a data change.
type Parameters struct {
	Year              int                `yaml:"year"`
	PovertyGuidelines PovertyGuidelines  `yaml:"poverty_guidelines"`
	SSI               SSIParameters      `yaml:"ssi"`
	SSDI              SSDIParameters     `yaml:"ssdi"`
	SNAP              SNAPParameters     `yaml:"snap"`
	Section8          Section8Parameters `yaml:"section8"`
	EITC              EITCParameters     `yaml:"eitc"`
	Medicaid          MedicaidParameters `yaml:"medicaid"`
	Medicare          MedicareParameters `yaml:"medicare"`
	ACA               ACAParameters      `yaml:"aca"`
	PublicHousing     RentShareLimit     `yaml:"public_housing"`
	HUDVASH           IncomeLimit        `yaml:"hudvash"`
	LIHEAP            FlatAmountLimit    `yaml:"liheap"`
	WIC               PerChildLimit      `yaml:"wic"`
	CTC               CTCParameters      `yaml:"ctc"`
	TANF              PerChildLimit      `yaml:"tanf"`
}

// PovertyGuidelines is the federal poverty level table: sizes 1..len(BySize), then a
// fixed increment per additional person.
type PovertyGuidelines struct {
	BySize           []float64 `yaml:"by_household_size"`
	AdditionalPerson float64   `yaml:"additional_person"`
}

type SSIParameters struct {
	FederalBenefitRate float64 `yaml:"federal_benefit_rate"`
	GeneralExclusion   float64 `yaml:"general_exclusion"`
	IncomeLimit        float64 `yaml:"income_limit"`
	AssetLimit         float64 `yaml:"asset_limit"`
	MinimumAge         int     `yaml:"minimum_age"`
}

type SSDIParameters struct {
	MinimumWorkYears int     `yaml:"minimum_work_years"`
	MonthlyAmount    float64 `yaml:"monthly_amount"`
}

type SNAPParameters struct {
	MaxBenefitBySize     []float64 `yaml:"max_benefit_by_household_size"`
	AdditionalPerson     float64   `yaml:"additional_person"`
	DeductionPerPerson   float64   `yaml:"deduction_per_person"`
	BenefitReductionRate float64   `yaml:"benefit_reduction_rate"`
	GrossIncomeLimitFPL  float64   `yaml:"gross_income_limit_fpl"`
}

type Section8Parameters struct {
	// AdjustedIncomeFactor approximates HUD's adjusted-income deductions.
	AdjustedIncomeFactor  float64 `yaml:"adjusted_income_factor"`
	TenantRentShare       float64 `yaml:"tenant_rent_share"`
	DefaultFairMarketRent float64 `yaml:"default_fair_market_rent"`
	IncomeLimitFPL        float64 `yaml:"income_limit_fpl"`
}

type EITCParameters struct {
	PhaseOutRate  float64        `yaml:"phase_out_rate"`
	IncomeCeiling float64        `yaml:"income_ceiling"`
	Schedules     []EITCSchedule `yaml:"schedules"`
}

// EITCSchedule is the credit table row for one qualifying-children count.
type EITCSchedule struct {
	Children      int     `yaml:"children"`
	MaxCredit     float64 `yaml:"max_credit"`
	PhaseOutStart float64 `yaml:"phase_out_start"`
	PhaseOutEnd   float64 `yaml:"phase_out_end"`
}

type MedicaidParameters struct {
	ExpansionMultiplier float64 `yaml:"expansion_multiplier"`
	DisabledMultiplier  float64 `yaml:"disabled_multiplier"`
	PregnantMultiplier  float64 `yaml:"pregnant_multiplier"`
}

type MedicareParameters struct {
	MinimumAge int `yaml:"minimum_age"`
}

type ACAParameters struct {
	LowerFPL         float64 `yaml:"lower_fpl"`
	UpperFPL         float64 `yaml:"upper_fpl"`
	PremiumRentShare float64 `yaml:"premium_rent_share"`
}

type IncomeLimit struct {
	IncomeLimitFPL float64 `yaml:"income_limit_fpl"`
}

type RentShareLimit struct {
	IncomeLimitFPL float64 `yaml:"income_limit_fpl"`
	RentShare      float64 `yaml:"rent_share"`
}

type FlatAmountLimit struct {
	IncomeLimitFPL float64 `yaml:"income_limit_fpl"`
	FlatAmount     float64 `yaml:"flat_amount"`
}

type PerChildLimit struct {
	IncomeLimitFPL float64 `yaml:"income_limit_fpl"`
	PerChild       float64 `yaml:"per_child"`
}

type CTCParameters struct {
	IncomeLimit float64 `yaml:"income_limit"`
	PerChild    float64 `yaml:"per_child"`
}

// Default2024 returns the embedded 2024 benefit-year parameters.
func Default2024() Parameters {
	p, err := Parse(benefitYear2024)
	if err != nil {
		panic(fmt.Sprintf("embedded benefit year 2024 is invalid: %v", err))
	}
	return p
}

// Parse decodes and validates a benefit-year YAML document. Unknown keys are
// rejected so a misspelled field cannot silently zero a threshold.
func Parse(data []byte) (Parameters, error) {
	var p Parameters
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Parameters{}, fmt.Errorf("decode benefit year: document is empty")
		}
		return Parameters{}, fmt.Errorf("decode benefit year: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// LoadFile reads benefit-year parameters from path.
func LoadFile(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read benefit year file: %w", err)
	}
	return Parse(data)
}

// Validate checks every value the formulas and catalog rules read. All
// problems are reported together.
func (p Parameters) Validate() error {
	if p.Year <= 0 {
		return fmt.Errorf("benefit year: year is required")
	}

	v := &validator{}
	v.table("poverty_guidelines.by_household_size", p.PovertyGuidelines.BySize)
	v.positive("poverty_guidelines.additional_person", p.PovertyGuidelines.AdditionalPerson)

	v.positive("ssi.federal_benefit_rate", p.SSI.FederalBenefitRate)
	v.nonNegative("ssi.general_exclusion", p.SSI.GeneralExclusion)
	v.positive("ssi.income_limit", p.SSI.IncomeLimit)
	v.positive("ssi.asset_limit", p.SSI.AssetLimit)
	v.positiveInt("ssi.minimum_age", p.SSI.MinimumAge)

	v.positiveInt("ssdi.minimum_work_years", p.SSDI.MinimumWorkYears)
	v.positive("ssdi.monthly_amount", p.SSDI.MonthlyAmount)

	v.table("snap.max_benefit_by_household_size", p.SNAP.MaxBenefitBySize)
	v.positive("snap.additional_person", p.SNAP.AdditionalPerson)
	v.nonNegative("snap.deduction_per_person", p.SNAP.DeductionPerPerson)
	v.fraction("snap.benefit_reduction_rate", p.SNAP.BenefitReductionRate)
	v.positive("snap.gross_income_limit_fpl", p.SNAP.GrossIncomeLimitFPL)

	v.fraction("section8.adjusted_income_factor", p.Section8.AdjustedIncomeFactor)
	v.fraction("section8.tenant_rent_share", p.Section8.TenantRentShare)
	v.positive("section8.default_fair_market_rent", p.Section8.DefaultFairMarketRent)
	v.positive("section8.income_limit_fpl", p.Section8.IncomeLimitFPL)

	v.fraction("eitc.phase_out_rate", p.EITC.PhaseOutRate)
	v.positive("eitc.income_ceiling", p.EITC.IncomeCeiling)
	if len(p.EITC.Schedules) == 0 {
		v.fail("eitc.schedules", "must not be empty")
	}
	for i, s := range p.EITC.Schedules {
		field := fmt.Sprintf("eitc.schedules[%d]", i)
		switch {
		case s.Children != i:
			v.fail(field, "schedules must be ordered by children starting at 0")
		case s.MaxCredit <= 0:
			v.fail(field+".max_credit", "must be positive")
		case s.PhaseOutEnd < s.PhaseOutStart:
			v.fail(field, fmt.Sprintf("schedule for %d children ends before it starts", s.Children))
		}
	}

	v.positive("medicaid.expansion_multiplier", p.Medicaid.ExpansionMultiplier)
	v.positive("medicaid.disabled_multiplier", p.Medicaid.DisabledMultiplier)
	v.positive("medicaid.pregnant_multiplier", p.Medicaid.PregnantMultiplier)

	v.positiveInt("medicare.minimum_age", p.Medicare.MinimumAge)

	v.positive("aca.lower_fpl", p.ACA.LowerFPL)
	v.positive("aca.upper_fpl", p.ACA.UpperFPL)
	if p.ACA.UpperFPL > 0 && p.ACA.UpperFPL <= p.ACA.LowerFPL {
		v.fail("aca.upper_fpl", "must exceed lower_fpl")
	}
	v.fraction("aca.premium_rent_share", p.ACA.PremiumRentShare)

	v.positive("public_housing.income_limit_fpl", p.PublicHousing.IncomeLimitFPL)
	v.fraction("public_housing.rent_share", p.PublicHousing.RentShare)
	v.positive("hudvash.income_limit_fpl", p.HUDVASH.IncomeLimitFPL)
	v.positive("liheap.income_limit_fpl", p.LIHEAP.IncomeLimitFPL)
	v.positive("liheap.flat_amount", p.LIHEAP.FlatAmount)
	v.positive("wic.income_limit_fpl", p.WIC.IncomeLimitFPL)
	v.positive("wic.per_child", p.WIC.PerChild)
	v.positive("ctc.income_limit", p.CTC.IncomeLimit)
	v.positive("ctc.per_child", p.CTC.PerChild)
	v.positive("tanf.income_limit_fpl", p.TANF.IncomeLimitFPL)
	v.positive("tanf.per_child", p.TANF.PerChild)

	if len(v.errs) > 0 {
		return fmt.Errorf("benefit year %d: %w", p.Year, errors.Join(v.errs...))
	}
	return nil
}

type validator struct {
	errs []error
}

func (v *validator) fail(field, msg string) {
	v.errs = append(v.errs, fmt.Errorf("%s %s", field, msg))
}

func (v *validator) positive(field string, x float64) {
	if !(x > 0) {
		v.fail(field, "must be positive")
	}
}

func (v *validator) positiveInt(field string, x int) {
	if x <= 0 {
		v.fail(field, "must be positive")
	}
}

func (v *validator) nonNegative(field string, x float64) {
	if !(x >= 0) {
		v.fail(field, "must not be negative")
	}
}

// fraction accepts rates and shares in (0, 1].
func (v *validator) fraction(field string, x float64) {
	if !(x > 0 && x <= 1) {
		v.fail(field, "must be in (0, 1]")
	}
}

func (v *validator) table(field string, values []float64) {
	if len(values) == 0 {
		v.fail(field, "must not be empty")
		return
	}
	for _, x := range values {
		if !(x > 0) {
			v.fail(field, "values must be positive")
			return
		}
	}
}
