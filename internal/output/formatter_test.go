package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	benefits := map[domain.Pillar]decimal.Decimal{}
	ratios := map[domain.Pillar]decimal.Decimal{}
	scores := map[domain.Pillar]decimal.Decimal{}
	weights := map[domain.Pillar]decimal.Decimal{}
	for _, p := range domain.AllPillars() {
		benefits[p] = decimal.Zero
		ratios[p] = decimal.Zero
		scores[p] = decimal.NewFromFloat(35.43)
		weights[p] = decimal.NewFromFloat(0.2)
	}
	benefits[domain.PillarV1] = decimal.NewFromInt(11372360)
	ratios[domain.PillarV1] = decimal.NewFromFloat(0.6430)
	scores[domain.PillarV1] = decimal.NewFromFloat(96.30)

	return &Report{
		Deal: &domain.Deal{
			Meta: domain.Meta{
				Company:      domain.Company{Industry: "manufacturing"},
				HorizonYears: 5,
				DiscountRate: decimal.NewFromFloat(0.10),
				Currency:     "USD",
			},
			AssumptionsUsed: []string{"opex held flat over the horizon"},
		},
		Result: &domain.Result{
			PVCost:             decimal.NewFromFloat(17686180.15),
			PillarPVBenefits:   benefits,
			PillarRatios:       ratios,
			PillarScores:       scores,
			Weights:            weights,
			EVI:                decimal.NewFromFloat(50.65),
			EVIConf:            decimal.NewFromFloat(28.11),
			ConfidenceWeighted: decimal.NewFromFloat(0.56),
			Warnings:           []string{"Potential double counting for: major_outage. Ensure V2 captures probability/impact changes and V5 captures MTTR severity only."},
			Sensitivities: []domain.SensitivityEntry{
				{Factor: "v1_fcf_plus10", Label: "Scale V1 annual FCF benefits +10%", DeltaEVI: decimal.NewFromFloat(1.23)},
				{Factor: "v5_costhr_plus10", Label: "Scale V5 cost per hour +10%", DeltaEVI: decimal.NewFromFloat(-0.4)},
				{Factor: "v2_p1_minus10", Label: "Reduce V2 post probabilities p1 by 10% (relative)", DeltaEVI: decimal.Zero},
				{Factor: "v3_profit_plus10", Label: "Scale V3 monthly profit +10%", DeltaEVI: decimal.Zero},
			},
			Logistic: domain.LogisticParams{
				A: decimal.NewFromFloat(6.0),
				B: decimal.NewFromFloat(0.10),
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range FormatterNames() {
		formatter := GetFormatterByName(name)
		require.NotNil(t, formatter, "Formatter %s should be registered", name)
		assert.Equal(t, name, formatter.Name())
	}

	assert.Nil(t, GetFormatterByName("xml"), "Unknown format should return nil")
	assert.Nil(t, GetFormatterByName(""))
}

func TestConsoleFormatter(t *testing.T) {
	formatter := &ConsoleFormatter{}

	out, err := formatter.Format(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "ENTERPRISE VALUE INDEX (EVI)")
	assert.Contains(t, out, "Industry: manufacturing | Horizon: 5 years | Discount rate: 10.0% | Currency: USD")
	assert.Contains(t, out, "EVI = 50.7")
	assert.Contains(t, out, "PV cost: $17686180.15")
	assert.Contains(t, out, "Capital Productivity")
	assert.Contains(t, out, "WARNING: Potential double counting")
	assert.Contains(t, out, "SENSITIVITY (largest impact first)")
	assert.Contains(t, out, "v1_fcf_plus10")
	assert.Contains(t, out, "Assumptions used:")
	assert.Contains(t, out, "opex held flat over the horizon")
}

func TestConsoleFormatter_NilResult(t *testing.T) {
	formatter := &ConsoleFormatter{}

	_, err := formatter.Format(&Report{})
	assert.Error(t, err)

	_, err = formatter.Format(nil)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	formatter := &JSONFormatter{Pretty: true}

	out, err := formatter.Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), "Output should be valid JSON")

	result, ok := decoded["result"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, result, "evi")
	assert.Contains(t, result, "pillarScores")
	assert.Contains(t, result, "sensitivities")
	assert.Contains(t, result, "config")
}

func TestCSVFormatter(t *testing.T) {
	formatter := &CSVFormatter{}

	out, err := formatter.Format(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err, "Output should be valid CSV")

	// Header + 5 pillar rows + 1 summary row + 4 sensitivity rows.
	require.Len(t, records, 11)
	assert.Equal(t, "Row", records[0][0])
	assert.Equal(t, "pillar", records[1][0])
	assert.Equal(t, "v1", records[1][1])
	assert.Equal(t, "summary", records[6][0])
	assert.Equal(t, "50.65", records[6][4])
	assert.Equal(t, "sensitivity", records[7][0])
	assert.Equal(t, "v1_fcf_plus10", records[7][1])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "96.3", FormatScore(decimal.NewFromFloat(96.30)))
}
