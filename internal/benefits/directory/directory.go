package directory

import (
	"slices"

	dErrors "benefitscout/pkg/domain-errors"
)

// Category groups programs for browsing.
type Category string

const (
	CategoryHealthcare     Category = "healthcare"
	CategoryHousing        Category = "housing"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	// CategoryIncome keeps the "ssi" path segment clients already use for income support.
	CategoryIncome Category = "ssi"
)

// Program is a directory entry. Entries are informational; only a subset has an
// eligibility rule in the engine.
type Program struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	Website     string `json:"website"`
}

var programs = map[Category][]Program{
	CategoryHealthcare: {
		{ID: "medicaid", Name: "Medicaid", Description: "Health coverage for low-income individuals and families", Eligibility: "Income at or below 138% of Federal Poverty Level in expansion states", Website: "https://www.medicaid.gov"},
		{ID: "medicare", Name: "Medicare", Description: "Health insurance for people 65+ or with certain disabilities", Eligibility: "Age 65+ or qualifying disability", Website: "https://www.medicare.gov"},
		{ID: "aca-subsidies", Name: "Marketplace Subsidies (ACA)", Description: "Premium tax credits and cost-sharing reductions", Eligibility: "Income between 100-400% of Federal Poverty Level", Website: "https://www.healthcare.gov"},
		{ID: "tricare", Name: "TRICARE", Description: "Health care program for military families and retirees", Eligibility: "Active duty, retirees, and their families", Website: "https://www.tricare.mil"},
		{ID: "va-health", Name: "VA Health Care", Description: "Comprehensive health care for veterans", Eligibility: "Veterans with qualifying service", Website: "https://www.va.gov/health-care"},
		{ID: "ryan-white", Name: "Ryan White HIV/AIDS Program", Description: "HIV care and treatment services", Eligibility: "Living with HIV, low-income", Website: "https://ryanwhite.hrsa.gov"},
		{ID: "spap", Name: "State Pharmaceutical Assistance Programs", Description: "Help with prescription drug costs", Eligibility: "Varies by state", Website: "Contact your state health department"},
	},
	CategoryHousing: {
		{ID: "section-8", Name: "Section 8 Housing Choice Vouchers", Description: "Rental assistance for low-income families", Eligibility: "Income at or below 50% of area median income", Website: "https://www.hud.gov/program_offices/public_indian_housing/programs/hcv"},
		{ID: "public-housing", Name: "Public Housing", Description: "Affordable rental housing", Eligibility: "Low-income families, elderly, and disabled", Website: "https://www.hud.gov/topics/rental_assistance/phprog"},
		{ID: "pbra", Name: "Project-Based Rental Assistance", Description: "Rental assistance tied to specific units", Eligibility: "Very low-income households", Website: "https://www.hud.gov"},
		{ID: "hud-vash", Name: "HUD-VASH", Description: "Housing vouchers for homeless veterans", Eligibility: "Homeless veterans", Website: "https://www.va.gov/homeless/hud-vash.asp"},
		{ID: "liheap", Name: "Low-Income Home Energy Assistance Program", Description: "Help with heating and cooling bills", Eligibility: "Low-income households", Website: "https://www.acf.hhs.gov/ocs/liheap"},
		{ID: "wap", Name: "Weatherization Assistance Program", Description: "Home energy efficiency improvements", Eligibility: "Low-income households", Website: "https://www.energy.gov/eere/wap"},
		{ID: "era", Name: "Emergency Rental Assistance", Description: "Emergency rent and utility assistance", Eligibility: "Financial hardship due to COVID-19 or other circumstances", Website: "https://home.treasury.gov/policy-issues/coronavirus/assistance-for-state-local-and-tribal-governments/emergency-rental-assistance-program"},
		{ID: "coc", Name: "Continuum of Care (CoC)", Description: "Homelessness prevention and assistance", Eligibility: "Homeless or at risk of homelessness", Website: "https://www.hud.gov/program_offices/comm_planning/coc"},
		{ID: "rural-housing", Name: "Rural Housing Assistance", Description: "USDA programs for rural areas (Section 515, 521, 542)", Eligibility: "Rural residents, low to moderate income", Website: "https://www.rd.usda.gov/programs-services/rental-assistance"},
		{ID: "property-tax-relief", Name: "State Property Tax Relief Programs", Description: "Property tax exemptions or deferrals", Eligibility: "Varies by state, typically seniors or disabled", Website: "Contact your state revenue department"},
	},
	CategoryFood: {
		{ID: "snap", Name: "SNAP (Food Stamps)", Description: "Monthly benefits for food purchases", Eligibility: "Income at or below 130% of Federal Poverty Level", Website: "https://www.fns.usda.gov/snap"},
		{ID: "wic", Name: "WIC", Description: "Nutrition program for women, infants, and children", Eligibility: "Pregnant women, new mothers, infants, children up to age 5", Website: "https://www.fns.usda.gov/wic"},
		{ID: "summer-ebt", Name: "Summer EBT / Pandemic EBT", Description: "Food benefits for children during summer", Eligibility: "Children eligible for free or reduced-price school meals", Website: "https://www.fns.usda.gov/snap/supplemental-nutrition-assistance-program"},
		{ID: "csfp", Name: "Commodity Supplemental Food Program", Description: "Monthly food packages for seniors", Eligibility: "Low-income seniors 60+", Website: "https://www.fns.usda.gov/csfp"},
		{ID: "tefap", Name: "The Emergency Food Assistance Program", Description: "Emergency food assistance", Eligibility: "Low-income households", Website: "https://www.fns.usda.gov/tefap"},
		{ID: "seniors-farmers-market", Name: "Senior Farmers' Market Nutrition Program", Description: "Coupons for fresh produce at farmers markets", Eligibility: "Low-income seniors 60+", Website: "https://www.fns.usda.gov/sfmnp"},
	},
	CategoryTransportation: {
		{ID: "nemt", Name: "Non-Emergency Medical Transportation (NEMT)", Description: "Transportation to medical appointments through Medicaid", Eligibility: "Medicaid beneficiaries", Website: "Contact your state Medicaid office"},
		{ID: "paratransit", Name: "Paratransit Services", Description: "ADA-mandated accessible transportation", Eligibility: "People with disabilities unable to use fixed-route transit", Website: "Contact your local transit authority"},
		{ID: "veterans-transportation", Name: "Veterans Transportation Service", Description: "Transportation to VA medical facilities", Eligibility: "Veterans enrolled in VA health care", Website: "https://www.va.gov/healthbenefits/vtp"},
		{ID: "transit-subsidies", Name: "State/Local Transit Fare Subsidy Programs", Description: "Reduced-fare transit programs", Eligibility: "Varies by location, typically seniors or disabled", Website: "Contact your local transit authority"},
		{ID: "vehicle-modifications", Name: "Vehicle Modification Grants", Description: "Grants for adaptive equipment", Eligibility: "People with disabilities", Website: "Various state and nonprofit programs"},
		{ID: "rural-vouchers", Name: "Transportation Vouchers for Rural Areas", Description: "Vouchers for rural transportation needs", Eligibility: "Rural residents, varies by program", Website: "Contact your state rural development office"},
	},
	CategoryIncome: {
		{ID: "ssi", Name: "Supplemental Security Income (SSI)", Description: "Monthly payments for aged, blind, or disabled individuals", Eligibility: "Limited income and resources, age 65+ or disabled", Website: "https://www.ssa.gov/benefits/ssi"},
		{ID: "ssdi", Name: "Social Security Disability Insurance (SSDI)", Description: "Benefits for disabled workers", Eligibility: "Sufficient work credits and qualifying disability", Website: "https://www.ssa.gov/benefits/disability"},
		{ID: "tanf", Name: "TANF", Description: "Temporary Assistance for Needy Families", Eligibility: "Low-income families with children", Website: "https://www.acf.hhs.gov/ofa/programs/tanf"},
		{ID: "general-assistance", Name: "General Assistance", Description: "State or local cash support", Eligibility: "Varies by state/locality", Website: "Contact your state or local social services"},
		{ID: "eitc", Name: "Earned Income Tax Credit (EITC)", Description: "Refundable tax credit for working people", Eligibility: "Income below threshold, must file tax return", Website: "https://www.irs.gov/credits-deductions/individuals/earned-income-tax-credit"},
		{ID: "ctc", Name: "Child Tax Credit (CTC)", Description: "Tax credit for families with children", Eligibility: "Families with qualifying children", Website: "https://www.irs.gov/credits-deductions/individuals/child-tax-credit"},
		{ID: "state-tax-credits", Name: "Refundable State Tax Credits", Description: "Various state-level tax credits", Eligibility: "Varies by state", Website: "Contact your state revenue department"},
	},
}

// Categories returns the category names in a stable order.
func Categories() []Category {
	out := make([]Category, 0, len(programs))
	for c := range programs {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Lookup returns a copy of the programs listed under category.
func Lookup(category string) ([]Program, error) {
	list, ok := programs[Category(category)]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "category not found")
	}
	return slices.Clone(list), nil
}
