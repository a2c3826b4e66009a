package output

import (
	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
)

// Report pairs a scoring result with the deal context needed to render it.
type Report struct {
	Deal   *domain.Deal   `json:"deal"`
	Result *domain.Result `json:"result"`
}

// Formatter renders a scoring result in one output format.
type Formatter interface {
	Format(report *Report) (string, error)
	Name() string
}

// GetFormatterByName returns the formatter for the given name, or nil.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return &ConsoleFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}

// FormatterNames lists the supported output formats.
func FormatterNames() []string {
	return []string{"console", "json", "csv"}
}

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatScore formats a 0-100 score with one decimal place.
func FormatScore(score decimal.Decimal) string {
	return score.StringFixed(1)
}
