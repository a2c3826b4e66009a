package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDealFromFile_ReferenceDeal(t *testing.T) {
	parser := NewInputParser()

	deal, cfg, err := parser.LoadDealFromFile(filepath.Join("testdata", "deal.yaml"))
	require.NoError(t, err)
	require.NotNil(t, deal)
	require.NotNil(t, cfg)

	assert.Equal(t, "manufacturing", deal.Meta.Company.Industry)
	assert.Equal(t, 5, deal.Meta.HorizonYears)
	assert.True(t, deal.Meta.DiscountRate.Equal(decimal.NewFromFloat(0.10)))
	assert.Equal(t, "USD", deal.Meta.Currency)

	assert.True(t, deal.Investment.CapexUpfront.Equal(decimal.NewFromInt(12000000)))
	require.Len(t, deal.Investment.OpexAnnual, 5)

	require.NotNil(t, deal.V1CapitalProductivity)
	require.Len(t, deal.V1CapitalProductivity.FCFBenefitAnnual, 5)
	require.Len(t, deal.V1CapitalProductivity.Notes, 1)
	assert.Equal(t, domain.SourceEstimated, deal.V1CapitalProductivity.Notes[0].Source)

	require.Len(t, deal.V2RiskEvents, 2)
	assert.Equal(t, "ransomware", deal.V2RiskEvents[0].Name)
	assert.True(t, deal.V2RiskEvents[0].L0.Equal(decimal.NewFromInt(15000000)), "Uppercase L0 key should parse")

	require.Len(t, deal.V3Initiatives, 1)
	require.Len(t, deal.V4Options, 1)
	require.NotNil(t, deal.V4OQI)
	require.Len(t, deal.V5Resilience, 1)

	assert.True(t, deal.Confidence.V1.Equal(decimal.NewFromFloat(0.7)))
	assert.True(t, deal.Confidence.V5.Equal(decimal.NewFromFloat(0.6)))

	// No scoring section: defaults apply.
	assert.True(t, cfg.LogisticA.Equal(decimal.NewFromFloat(6.0)))
	assert.True(t, cfg.Weights[domain.PillarV1].Equal(decimal.NewFromFloat(0.25)))
}

func TestLoadDealFromFile_MissingFile(t *testing.T) {
	parser := NewInputParser()

	_, _, err := parser.LoadDealFromFile(filepath.Join("testdata", "does-not-exist.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func writeTempDeal(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDealFromFile_AppliesDefaults(t *testing.T) {
	parser := NewInputParser()
	path := writeTempDeal(t, `
meta:
  company:
    industry: retail
investment:
  capex_upfront: 1000
  opex_annual: [10, 10, 10, 10, 10]
`)

	deal, _, err := parser.LoadDealFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, deal.Meta.HorizonYears, "Horizon should default to 5")
	assert.Equal(t, "USD", deal.Meta.Currency, "Currency should default to USD")
	for _, p := range domain.AllPillars() {
		assert.True(t, deal.Confidence.For(p).Equal(decimal.NewFromFloat(0.3)),
			"Confidence for %s should default to 0.3", p)
	}
}

func TestLoadDealFromFile_ScoringOverride(t *testing.T) {
	parser := NewInputParser()
	path := writeTempDeal(t, `
meta:
  company:
    industry: retail
investment:
  capex_upfront: 1000
  opex_annual: [10, 10, 10, 10, 10]
scoring:
  weights:
    v1: 0.4
    v2: 0.15
    v3: 0.15
    v4: 0.15
    v5: 0.15
  logistic_a: 4.0
`)

	_, cfg, err := parser.LoadDealFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Weights[domain.PillarV1].Equal(decimal.NewFromFloat(0.4)))
	assert.True(t, cfg.LogisticA.Equal(decimal.NewFromFloat(4.0)))
	assert.True(t, cfg.LogisticB.Equal(decimal.NewFromFloat(0.10)), "Unset midpoint keeps its default")
}

func TestLoadDealFromFile_RejectsBadWeightSum(t *testing.T) {
	parser := NewInputParser()
	path := writeTempDeal(t, `
meta:
  company:
    industry: retail
investment:
  capex_upfront: 1000
  opex_annual: [10, 10, 10, 10, 10]
scoring:
  weights:
    v1: 0.9
    v2: 0.9
    v3: 0.1
    v4: 0.1
    v5: 0.1
`)

	_, _, err := parser.LoadDealFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1.0")
}

func TestValidateDeal_CollectsEveryIssue(t *testing.T) {
	parser := NewInputParser()
	deal := &domain.Deal{
		Meta: domain.Meta{
			Company:      domain.Company{Industry: ""},
			HorizonYears: 20,
			DiscountRate: decimal.NewFromFloat(0.9),
		},
		Investment: domain.Investment{
			CapexUpfront: decimal.NewFromInt(-5),
			OpexAnnual:   []decimal.Decimal{decimal.NewFromInt(10)},
		},
		V2RiskEvents: []domain.RiskEvent{
			{Name: "", P0: decimal.NewFromFloat(1.5), P1: decimal.NewFromFloat(-0.1),
				L0: decimal.NewFromInt(-1), L1: decimal.Zero},
		},
		Confidence: domain.DefaultConfidence(),
	}

	err := parser.ValidateDeal(deal)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Issues), 8, "Every offending field should be listed")

	assert.Contains(t, err.Error(), "meta.company.industry")
	assert.Contains(t, err.Error(), "meta.horizon_years")
	assert.Contains(t, err.Error(), "meta.discount_rate")
	assert.Contains(t, err.Error(), "investment.capex_upfront")
	assert.Contains(t, err.Error(), "investment.opex_annual")
	assert.Contains(t, err.Error(), "v2_risk_events[0].name")
	assert.Contains(t, err.Error(), "v2_risk_events[0].p0")
	assert.Contains(t, err.Error(), "v2_risk_events[0].L0")
}

func TestValidateDeal_ArrayLengthMismatch(t *testing.T) {
	parser := NewInputParser()
	deal := &domain.Deal{
		Meta: domain.Meta{
			Company:      domain.Company{Industry: "retail"},
			HorizonYears: 5,
			DiscountRate: decimal.NewFromFloat(0.1),
		},
		Investment: domain.Investment{
			CapexUpfront: decimal.NewFromInt(100),
			OpexAnnual: []decimal.Decimal{
				decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
			},
		},
		V1CapitalProductivity: &domain.V1CapitalProductivity{
			FCFBenefitAnnual: []decimal.Decimal{decimal.NewFromInt(10)}, // wrong length
		},
		Confidence: domain.DefaultConfidence(),
	}

	err := parser.ValidateDeal(deal)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "v1_capital_productivity.fcf_benefit_annual")
	assert.Contains(t, err.Error(), "length 5")
}

func TestValidateDeal_OQIRange(t *testing.T) {
	parser := NewInputParser()
	deal := &domain.Deal{
		Meta: domain.Meta{
			Company:      domain.Company{Industry: "retail"},
			HorizonYears: 1,
			DiscountRate: decimal.Zero,
		},
		Investment: domain.Investment{
			CapexUpfront: decimal.NewFromInt(100),
			OpexAnnual:   []decimal.Decimal{decimal.Zero},
		},
		V4OQI: &domain.OQIScores{
			Flexibility: decimal.NewFromInt(6),
			Portability: decimal.NewFromInt(-1),
		},
		Confidence: domain.DefaultConfidence(),
	}

	err := parser.ValidateDeal(deal)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "v4_oqi.flexibility")
	assert.Contains(t, err.Error(), "v4_oqi.portability")
}

func TestValidateDeal_ValidDealPasses(t *testing.T) {
	parser := NewInputParser()
	deal := &domain.Deal{
		Meta: domain.Meta{
			Company:      domain.Company{Industry: "retail"},
			HorizonYears: 2,
			DiscountRate: decimal.NewFromFloat(0.08),
		},
		Investment: domain.Investment{
			CapexUpfront: decimal.NewFromInt(100),
			OpexAnnual:   []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(1)},
		},
		Confidence: domain.DefaultConfidence(),
	}

	assert.NoError(t, parser.ValidateDeal(deal))
}
