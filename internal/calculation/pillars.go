package calculation

import (
	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
)

// pillarCalculator binds one pillar to its present-value computation. The
// closed pillarCalculators set lets the scoring engine iterate pillars
// generically; every calculator returns zero when its dataset is absent.
type pillarCalculator struct {
	ID      domain.Pillar
	Compute func(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal
}

var pillarCalculators = []pillarCalculator{
	{domain.PillarV1, pvCapitalProductivity},
	{domain.PillarV2, pvRiskCompression},
	{domain.PillarV3, pvStrategicVelocity},
	{domain.PillarV4, pvOptionality},
	{domain.PillarV5, pvResilience},
}

// pvCapitalProductivity discounts the annual free-cash-flow benefit series
// year by year.
func pvCapitalProductivity(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal {
	v1 := deal.V1CapitalProductivity
	if v1 == nil || len(v1.FCFBenefitAnnual) == 0 {
		return decimal.Zero
	}
	pv := decimal.Zero
	for t, benefit := range v1.FCFBenefitAnnual {
		pv = pv.Add(factors[t].Mul(benefit))
	}
	return pv
}

// pvRiskCompression values the drop in expected annual loss across all risk
// events, treated as a constant annuity over the horizon.
func pvRiskCompression(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal {
	annualReduction := decimal.Zero
	for _, e := range deal.V2RiskEvents {
		annualReduction = annualReduction.Add(e.P0.Mul(e.L0).Sub(e.P1.Mul(e.L1)))
	}
	pv := decimal.Zero
	for _, factor := range factors {
		pv = pv.Add(factor.Mul(annualReduction))
	}
	return pv
}

// pvStrategicVelocity values accelerated initiatives as a single
// front-loaded benefit discounted at period 1 only. Unlike V1/V2/V5 this is
// deliberately not an annuity: the acceleration is a one-time pull-forward
// of profit, not a recurring stream.
func pvStrategicVelocity(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal {
	if len(deal.V3Initiatives) == 0 || len(factors) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, m := range deal.V3Initiatives {
		total = total.Add(m.Prob.Mul(m.MonthsAccel).Mul(m.MonthlyProfit))
	}
	return factors[0].Mul(total)
}

// oqiDivisor assumes exactly four sub-scores capped at 5 each; adding a
// fifth OQI dimension requires changing this divisor in lockstep.
var oqiDivisor = decimal.NewFromInt(20)

// pvOptionality values future option opportunities, dampened by the
// Optionality Quality Index. Option values arrive as NPVs, so no further
// discounting is applied.
func pvOptionality(deal *domain.Deal, _ []decimal.Decimal) decimal.Decimal {
	raw := decimal.Zero
	for _, opt := range deal.V4Options {
		raw = raw.Add(opt.Prob.Mul(opt.FeasibilityLift.Mul(opt.NPVIfPursued).Add(opt.ExerciseCostReductionPV)))
	}

	oqi := decimal.NewFromInt(1)
	if deal.V4OQI != nil {
		lo, hi := decimal.Zero, decimal.NewFromInt(5)
		sum := clamp(deal.V4OQI.Flexibility, lo, hi).
			Add(clamp(deal.V4OQI.Portability, lo, hi)).
			Add(clamp(deal.V4OQI.DataLiquidity, lo, hi)).
			Add(clamp(deal.V4OQI.Scalability, lo, hi))
		oqi = sum.Div(oqiDivisor)
	}
	return oqi.Mul(raw)
}

// pvResilience values the probability-weighted downtime hours saved per
// year, priced at the hourly cost and annuitized like V2.
func pvResilience(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal {
	annualReduction := decimal.Zero
	for _, s := range deal.V5Resilience {
		annualReduction = annualReduction.Add(s.P.Mul(s.MTTR0Hours.Sub(s.MTTR1Hours)).Mul(s.CostPerHour))
	}
	pv := decimal.Zero
	for _, factor := range factors {
		pv = pv.Add(factor.Mul(annualReduction))
	}
	return pv
}
