package output

import (
	"fmt"
	"strings"

	"github.com/evengine/evi/internal/domain"
)

// ConsoleFormatter renders a human-readable report for the terminal.
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

// Format generates the console report: headline figures, the pillar table,
// any double-counting warnings, and the ranked sensitivity table.
func (cf *ConsoleFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("no result to format")
	}
	result := report.Result

	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("ENTERPRISE VALUE INDEX (EVI)"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	if report.Deal != nil {
		sb.WriteString(fmt.Sprintf("Industry: %s | Horizon: %d years | Discount rate: %s%% | Currency: %s\n",
			report.Deal.Meta.Company.Industry,
			report.Deal.Meta.HorizonYears,
			report.Deal.Meta.DiscountRate.Mul(hundred).StringFixed(1),
			report.Deal.Meta.Currency))
	}
	sb.WriteString("\n")

	sb.WriteString(HeadlineStyle.Render(fmt.Sprintf("EVI = %s", FormatScore(result.EVI))))
	sb.WriteString(fmt.Sprintf(" | EVI (confidence adjusted) = %s | weighted confidence = %s\n",
		FormatScore(result.EVIConf), result.ConfidenceWeighted.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("PV cost: %s\n", FormatCurrency(result.PVCost)))
	sb.WriteString("\n")

	// Pillar table
	sb.WriteString(fmt.Sprintf("%-26s %18s %10s %8s %8s\n",
		"Pillar", "PV Benefit", "Ratio", "Score", "Weight"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, p := range domain.AllPillars() {
		sb.WriteString(fmt.Sprintf("%-26s %18s %10s %8s %8s\n",
			fmt.Sprintf("%s (%s)", strings.ToUpper(string(p)), p.Label()),
			FormatCurrency(result.PillarPVBenefits[p]),
			result.PillarRatios[p].StringFixed(4),
			FormatScore(result.PillarScores[p]),
			result.Weights[p].StringFixed(2)))
	}
	sb.WriteString("\n")

	for _, warning := range result.Warnings {
		sb.WriteString(WarningStyle.Render("WARNING: " + warning))
		sb.WriteString("\n")
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("\n")
	}

	if len(result.Sensitivities) > 0 {
		sb.WriteString("SENSITIVITY (largest impact first)\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, entry := range result.Sensitivities {
			delta := entry.DeltaEVI.StringFixed(2)
			style := PositiveStyle
			if entry.DeltaEVI.IsNegative() {
				style = NegativeStyle
			} else if entry.DeltaEVI.IsZero() {
				style = MutedStyle
				delta = "0.00"
			}
			sb.WriteString(fmt.Sprintf("%-20s %10s  %s\n",
				entry.Factor, style.Render(delta), MutedStyle.Render(entry.Label)))
		}
		sb.WriteString("\n")
	}

	if report.Deal != nil && len(report.Deal.AssumptionsUsed) > 0 {
		sb.WriteString("Assumptions used:\n")
		for _, assumption := range report.Deal.AssumptionsUsed {
			sb.WriteString("  - " + assumption + "\n")
		}
	}

	return sb.String(), nil
}
