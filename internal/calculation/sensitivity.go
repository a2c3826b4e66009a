package calculation

import (
	"fmt"
	"sort"

	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
)

// sensitivityScenario is one fixed single-factor perturbation. Perturb
// builds a deal variant by value; the base deal is never touched.
type sensitivityScenario struct {
	Factor  string
	Label   string
	Perturb func(domain.Deal) domain.Deal
}

// sensitivityScenarios is the fixed scenario set. Every run reports all
// four entries; a scenario whose pillar dataset is absent is a no-op and
// surfaces with a zero delta.
var sensitivityScenarios = []sensitivityScenario{
	{"v1_fcf_plus10", "Scale V1 annual FCF benefits +10%", perturbV1FCF},
	{"v2_p1_minus10", "Reduce V2 post probabilities p1 by 10% (relative)", perturbV2PostProbability},
	{"v3_profit_plus10", "Scale V3 monthly profit +10%", perturbV3MonthlyProfit},
	{"v5_costhr_plus10", "Scale V5 cost per hour +10%", perturbV5CostPerHour},
}

// SensitivityAnalyzer reruns the scoring pipeline once per fixed
// perturbation scenario and ranks the impact on the EVI.
type SensitivityAnalyzer struct {
	engine *ScoringEngine
}

// NewSensitivityAnalyzer creates an analyzer around an existing engine so
// perturbed runs use the same scoring configuration as the base run.
func NewSensitivityAnalyzer(engine *ScoringEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// Analyze scores every perturbation scenario against baseEVI and returns
// the entries sorted by descending absolute delta. Ties keep scenario
// declaration order.
func (sa *SensitivityAnalyzer) Analyze(deal *domain.Deal, baseEVI decimal.Decimal) ([]domain.SensitivityEntry, error) {
	entries := make([]domain.SensitivityEntry, 0, len(sensitivityScenarios))
	for _, scenario := range sensitivityScenarios {
		perturbed := scenario.Perturb(*deal)

		// Sensitivity recursion stays disabled: each scenario runs the
		// pipeline exactly once.
		result, err := sa.engine.ScoreWithoutSensitivity(&perturbed)
		if err != nil {
			return nil, fmt.Errorf("sensitivity scenario %s: %w", scenario.Factor, err)
		}

		entries = append(entries, domain.SensitivityEntry{
			Factor:   scenario.Factor,
			Label:    scenario.Label,
			DeltaEVI: result.EVI.Sub(baseEVI),
		})
		sa.engine.Logger.Debugf("sensitivity %s: delta_evi=%s",
			scenario.Factor, result.EVI.Sub(baseEVI).StringFixed(4))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DeltaEVI.Abs().GreaterThan(entries[j].DeltaEVI.Abs())
	})
	return entries, nil
}

var (
	scaleUpTenPct   = decimal.NewFromFloat(1.10)
	scaleDownTenPct = decimal.NewFromFloat(0.90)
)

func perturbV1FCF(deal domain.Deal) domain.Deal {
	v1 := deal.V1CapitalProductivity
	if v1 == nil || len(v1.FCFBenefitAnnual) == 0 {
		return deal
	}
	scaled := make([]decimal.Decimal, len(v1.FCFBenefitAnnual))
	for i, benefit := range v1.FCFBenefitAnnual {
		scaled[i] = benefit.Mul(scaleUpTenPct)
	}
	return deal.WithV1FCF(scaled)
}

func perturbV2PostProbability(deal domain.Deal) domain.Deal {
	if len(deal.V2RiskEvents) == 0 {
		return deal
	}
	one := decimal.NewFromInt(1)
	events := make([]domain.RiskEvent, len(deal.V2RiskEvents))
	copy(events, deal.V2RiskEvents)
	for i := range events {
		events[i].P1 = clamp(events[i].P1.Mul(scaleDownTenPct), decimal.Zero, one)
	}
	return deal.WithRiskEvents(events)
}

func perturbV3MonthlyProfit(deal domain.Deal) domain.Deal {
	if len(deal.V3Initiatives) == 0 {
		return deal
	}
	initiatives := make([]domain.Initiative, len(deal.V3Initiatives))
	copy(initiatives, deal.V3Initiatives)
	for i := range initiatives {
		initiatives[i].MonthlyProfit = initiatives[i].MonthlyProfit.Mul(scaleUpTenPct)
	}
	return deal.WithInitiatives(initiatives)
}

func perturbV5CostPerHour(deal domain.Deal) domain.Deal {
	if len(deal.V5Resilience) == 0 {
		return deal
	}
	scenarios := make([]domain.ResilienceScenario, len(deal.V5Resilience))
	copy(scenarios, deal.V5Resilience)
	for i := range scenarios {
		scenarios[i].CostPerHour = scenarios[i].CostPerHour.Mul(scaleUpTenPct)
	}
	return deal.WithResilience(scenarios)
}
