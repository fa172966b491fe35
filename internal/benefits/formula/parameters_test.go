package formula

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault2024(t *testing.T) {
	p := Default2024()

	assert.Equal(t, 2024, p.Year)
	assert.Len(t, p.PovertyGuidelines.BySize, 6)
	assert.Equal(t, 943.0, p.SSI.FederalBenefitRate)
	assert.Equal(t, 20.0, p.SSI.GeneralExclusion)
	assert.Equal(t, 231.0, p.SNAP.AdditionalPerson)
	assert.Equal(t, 1200.0, p.Section8.DefaultFairMarketRent)
	require.Len(t, p.EITC.Schedules, 4)
	assert.Equal(t, 55768.0, p.EITC.Schedules[2].PhaseOutEnd)
	assert.Equal(t, 0.1598, p.EITC.PhaseOutRate)
}

func TestParse(t *testing.T) {
	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("year: [unterminated"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode benefit year")
	})

	t.Run("rejects missing year", func(t *testing.T) {
		_, err := Parse([]byte("poverty_guidelines:\n  by_household_size: [1]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "year is required")
	})

	t.Run("rejects out-of-order EITC schedules", func(t *testing.T) {
		doc := strings.Replace(string(benefitYear2024), "- children: 0", "- children: 9", 1)
		_, err := Parse([]byte(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "eitc.schedules[0] schedules must be ordered")
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		doc := strings.Replace(string(benefitYear2024), "federal_benefit_rate:", "federal_benfit_rate:", 1)
		_, err := Parse([]byte(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "federal_benfit_rate")
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := Parse(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document is empty")
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		doc := strings.Replace(string(benefitYear2024), "asset_limit: 2000", "asset_limit: 0", 1)
		doc = strings.Replace(doc, "flat_amount: 500", "flat_amount: -1", 1)
		_, err := Parse([]byte(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ssi.asset_limit must be positive")
		assert.Contains(t, err.Error(), "liheap.flat_amount must be positive")
	})

	t.Run("accepts an updated benefit year", func(t *testing.T) {
		doc := strings.Replace(string(benefitYear2024), "year: 2024", "year: 2025", 1)
		doc = strings.Replace(doc, "federal_benefit_rate: 943", "federal_benefit_rate: 967", 1)
		p, err := Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, 2025, p.Year)
		assert.Equal(t, 967.0, New(p).SSI(0, 70, false))
	})
}

func TestParseRejectsInvalidSections(t *testing.T) {
	tests := []struct {
		name  string
		old   string
		new   string
		field string
	}{
		{"poverty table", "additional_person: 5380", "additional_person: 0", "poverty_guidelines.additional_person"},
		{"ssi rate", "federal_benefit_rate: 943", "federal_benefit_rate: 0", "ssi.federal_benefit_rate"},
		{"ssi income limit", "income_limit: 1913", "income_limit: -5", "ssi.income_limit"},
		{"ssi asset limit", "asset_limit: 2000", "asset_limit: 0", "ssi.asset_limit"},
		{"ssdi amount", "monthly_amount: 1537", "monthly_amount: 0", "ssdi.monthly_amount"},
		{"snap reduction rate", "benefit_reduction_rate: 0.3", "benefit_reduction_rate: 1.3", "snap.benefit_reduction_rate"},
		{"section8 rent share", "tenant_rent_share: 0.3", "tenant_rent_share: 0", "section8.tenant_rent_share"},
		{"section8 fair market rent", "default_fair_market_rent: 1200", "default_fair_market_rent: 0", "section8.default_fair_market_rent"},
		{"eitc rate", "phase_out_rate: 0.1598", "phase_out_rate: 0", "eitc.phase_out_rate"},
		{"eitc ceiling", "income_ceiling: 63000", "income_ceiling: 0", "eitc.income_ceiling"},
		{"eitc credit", "max_credit: 632", "max_credit: 0", "eitc.schedules[0].max_credit"},
		{"medicaid expansion", "expansion_multiplier: 1.38", "expansion_multiplier: 0", "medicaid.expansion_multiplier"},
		{"medicaid disabled", "disabled_multiplier: 1.5", "disabled_multiplier: -1", "medicaid.disabled_multiplier"},
		{"medicaid pregnant", "pregnant_multiplier: 2.0", "pregnant_multiplier: 0", "medicaid.pregnant_multiplier"},
		{"aca band", "upper_fpl: 4.0", "upper_fpl: 0.5", "aca.upper_fpl"},
		{"aca premium share", "premium_rent_share: 0.3", "premium_rent_share: 0", "aca.premium_rent_share"},
		{"public housing share", "  rent_share: 0.3", "  rent_share: 2", "public_housing.rent_share"},
		{"liheap amount", "flat_amount: 500", "flat_amount: 0", "liheap.flat_amount"},
		{"wic amount", "per_child: 50", "per_child: 0", "wic.per_child"},
		{"ctc amount", "per_child: 2000", "per_child: 0", "ctc.per_child"},
		{"ctc limit", "income_limit: 200000", "income_limit: 0", "ctc.income_limit"},
		{"tanf amount", "per_child: 150", "per_child: 0", "tanf.per_child"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, string(benefitYear2024), tt.old)
			doc := strings.Replace(string(benefitYear2024), tt.old, tt.new, 1)

			_, err := Parse([]byte(doc))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benefit_year.yaml")
	require.NoError(t, os.WriteFile(path, benefitYear2024, 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default2024(), p)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
