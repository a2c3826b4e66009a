package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/evengine/evi/internal/domain"
)

// CSVFormatter renders the pillar breakdown and sensitivity ranking as CSV.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output: one row per pillar, a summary row for the
// composite figures, then one row per sensitivity scenario.
func (cf *CSVFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("no result to format")
	}
	result := report.Result

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Row", "Pillar", "PV Benefit", "Ratio", "Score", "Weight", "Delta EVI"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, p := range domain.AllPillars() {
		row := []string{
			"pillar",
			string(p),
			result.PillarPVBenefits[p].StringFixed(2),
			result.PillarRatios[p].StringFixed(6),
			result.PillarScores[p].StringFixed(2),
			result.Weights[p].StringFixed(4),
			"",
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	summary := []string{
		"summary",
		"EVI",
		result.PVCost.StringFixed(2),
		"",
		result.EVI.StringFixed(2),
		"",
		"",
	}
	if err := writer.Write(summary); err != nil {
		return "", err
	}

	for _, entry := range result.Sensitivities {
		row := []string{
			"sensitivity",
			entry.Factor,
			"",
			"",
			"",
			"",
			entry.DeltaEVI.StringFixed(4),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
