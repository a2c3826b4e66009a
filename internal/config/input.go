package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValidationError aggregates every structural problem found in a deal file,
// field-path qualified, so one round trip surfaces all of them.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("deal validation failed: %s", strings.Join(e.Issues, "; "))
}

// DealDocument is the on-disk shape of a deal file: the deal itself plus an
// optional scoring section overriding weights and logistic parameters.
type DealDocument struct {
	Deal    domain.Deal      `yaml:",inline"`
	Scoring *ScoringOverride `yaml:"scoring,omitempty"`
}

// ScoringOverride carries optional scoring parameters from the deal file.
// Absent fields fall back to the defaults.
type ScoringOverride struct {
	Weights   map[domain.Pillar]decimal.Decimal `yaml:"weights,omitempty"`
	LogisticA *decimal.Decimal                  `yaml:"logistic_a,omitempty"`
	LogisticB *decimal.Decimal                  `yaml:"logistic_b,omitempty"`
}

// InputParser handles parsing of deal input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadDealFromFile loads a deal and its scoring configuration from a YAML
// file (JSON deal files parse too, YAML being a superset). The returned
// deal has defaults applied and has passed structural validation; the engine
// never sees anything weaker.
func (ip *InputParser) LoadDealFromFile(filename string) (*domain.Deal, *domain.ScoringConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc DealDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	ip.ApplyDefaults(&doc.Deal)

	if err := ip.ValidateDeal(&doc.Deal); err != nil {
		return nil, nil, err
	}

	cfg, err := ip.BuildScoringConfig(doc.Scoring)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring configuration invalid: %w", err)
	}

	return &doc.Deal, cfg, nil
}

// ApplyDefaults fills the fields the deal schema defaults when absent: a
// 5-year horizon, USD currency, and 0.3 confidence per pillar. A zero
// horizon can only mean "absent" since the valid range starts at 1.
func (ip *InputParser) ApplyDefaults(deal *domain.Deal) {
	if deal.Meta.HorizonYears == 0 {
		deal.Meta.HorizonYears = 5
	}
	if deal.Meta.Currency == "" {
		deal.Meta.Currency = "USD"
	}
	if deal.Confidence == (domain.Confidence{}) {
		deal.Confidence = domain.DefaultConfidence()
	}
}

// BuildScoringConfig merges file-level overrides onto the defaults and
// validates the merged configuration.
func (ip *InputParser) BuildScoringConfig(override *ScoringOverride) (*domain.ScoringConfig, error) {
	if override == nil {
		return domain.DefaultScoringConfig(), nil
	}

	weights := override.Weights
	if len(weights) == 0 {
		weights = domain.DefaultWeights()
	}
	logisticA := decimal.NewFromFloat(6.0)
	if override.LogisticA != nil {
		logisticA = *override.LogisticA
	}
	logisticB := decimal.NewFromFloat(0.10)
	if override.LogisticB != nil {
		logisticB = *override.LogisticB
	}

	return domain.NewScoringConfig(weights, logisticA, logisticB)
}

// ValidateDeal runs the full structural validation and returns a
// *ValidationError listing every offending field, or nil.
func (ip *InputParser) ValidateDeal(deal *domain.Deal) error {
	var issues []string
	issues = append(issues, ip.validateMeta(&deal.Meta)...)
	issues = append(issues, ip.validateInvestment(&deal.Investment, deal.Meta.HorizonYears)...)
	issues = append(issues, ip.validatePillars(deal)...)
	issues = append(issues, ip.validateConfidence(&deal.Confidence)...)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

var (
	probabilityOne = decimal.NewFromInt(1)
	maxSubScore    = decimal.NewFromInt(5)
	maxRate        = decimal.NewFromFloat(0.5)
)

func (ip *InputParser) validateMeta(meta *domain.Meta) []string {
	var issues []string
	if meta.Company.Industry == "" {
		issues = append(issues, "meta.company.industry: is required")
	}
	if meta.HorizonYears < 1 || meta.HorizonYears > 15 {
		issues = append(issues, fmt.Sprintf("meta.horizon_years: must be between 1 and 15, got %d", meta.HorizonYears))
	}
	if meta.DiscountRate.IsNegative() || meta.DiscountRate.GreaterThan(maxRate) {
		issues = append(issues, fmt.Sprintf("meta.discount_rate: must be between 0 and 0.5, got %s", meta.DiscountRate))
	}
	return issues
}

func (ip *InputParser) validateInvestment(investment *domain.Investment, horizonYears int) []string {
	var issues []string
	if investment.CapexUpfront.IsNegative() {
		issues = append(issues, fmt.Sprintf("investment.capex_upfront: cannot be negative, got %s", investment.CapexUpfront))
	}
	if len(investment.OpexAnnual) != horizonYears {
		issues = append(issues, fmt.Sprintf("investment.opex_annual: must have length %d (horizon_years), got %d",
			horizonYears, len(investment.OpexAnnual)))
	}
	for i, opex := range investment.OpexAnnual {
		if opex.IsNegative() {
			issues = append(issues, fmt.Sprintf("investment.opex_annual[%d]: cannot be negative, got %s", i, opex))
		}
	}
	return issues
}

func (ip *InputParser) validatePillars(deal *domain.Deal) []string {
	var issues []string

	if v1 := deal.V1CapitalProductivity; v1 != nil && v1.FCFBenefitAnnual != nil {
		if len(v1.FCFBenefitAnnual) != deal.Meta.HorizonYears {
			issues = append(issues, fmt.Sprintf("v1_capital_productivity.fcf_benefit_annual: must have length %d (horizon_years), got %d",
				deal.Meta.HorizonYears, len(v1.FCFBenefitAnnual)))
		}
	}

	for i, e := range deal.V2RiskEvents {
		path := fmt.Sprintf("v2_risk_events[%d]", i)
		if e.Name == "" {
			issues = append(issues, path+".name: is required")
		}
		issues = append(issues, checkProbability(path+".p0", e.P0)...)
		issues = append(issues, checkProbability(path+".p1", e.P1)...)
		issues = append(issues, checkNonNegative(path+".L0", e.L0)...)
		issues = append(issues, checkNonNegative(path+".L1", e.L1)...)
	}

	for i, m := range deal.V3Initiatives {
		path := fmt.Sprintf("v3_initiatives[%d]", i)
		if m.Name == "" {
			issues = append(issues, path+".name: is required")
		}
		issues = append(issues, checkNonNegative(path+".months_accel", m.MonthsAccel)...)
		issues = append(issues, checkProbability(path+".prob", m.Prob)...)
	}

	for i, opt := range deal.V4Options {
		path := fmt.Sprintf("v4_options[%d]", i)
		if opt.Name == "" {
			issues = append(issues, path+".name: is required")
		}
		issues = append(issues, checkProbability(path+".prob", opt.Prob)...)
		issues = append(issues, checkProbability(path+".feasibility_lift", opt.FeasibilityLift)...)
		issues = append(issues, checkNonNegative(path+".exercise_cost_reduction_pv", opt.ExerciseCostReductionPV)...)
	}

	if oqi := deal.V4OQI; oqi != nil {
		issues = append(issues, checkSubScore("v4_oqi.flexibility", oqi.Flexibility)...)
		issues = append(issues, checkSubScore("v4_oqi.portability", oqi.Portability)...)
		issues = append(issues, checkSubScore("v4_oqi.data_liquidity", oqi.DataLiquidity)...)
		issues = append(issues, checkSubScore("v4_oqi.scalability", oqi.Scalability)...)
	}

	for i, s := range deal.V5Resilience {
		path := fmt.Sprintf("v5_resilience[%d]", i)
		if s.Name == "" {
			issues = append(issues, path+".name: is required")
		}
		issues = append(issues, checkProbability(path+".p", s.P)...)
		issues = append(issues, checkNonNegative(path+".mttr0_hours", s.MTTR0Hours)...)
		issues = append(issues, checkNonNegative(path+".mttr1_hours", s.MTTR1Hours)...)
		issues = append(issues, checkNonNegative(path+".cost_per_hour", s.CostPerHour)...)
	}

	return issues
}

func (ip *InputParser) validateConfidence(confidence *domain.Confidence) []string {
	var issues []string
	for _, p := range domain.AllPillars() {
		issues = append(issues, checkProbability("confidence."+string(p), confidence.For(p))...)
	}
	return issues
}

func checkProbability(path string, value decimal.Decimal) []string {
	if value.IsNegative() || value.GreaterThan(probabilityOne) {
		return []string{fmt.Sprintf("%s: must be between 0 and 1, got %s", path, value)}
	}
	return nil
}

func checkNonNegative(path string, value decimal.Decimal) []string {
	if value.IsNegative() {
		return []string{fmt.Sprintf("%s: cannot be negative, got %s", path, value)}
	}
	return nil
}

func checkSubScore(path string, value decimal.Decimal) []string {
	if value.IsNegative() || value.GreaterThan(maxSubScore) {
		return []string{fmt.Sprintf("%s: must be between 0 and 5, got %s", path, value)}
	}
	return nil
}
