package calculation

import (
	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
)

// DiscountFactors returns the present-value factor for each period 1..T at
// rate r: the t-th factor (1-indexed) is 1/(1+r)^t. The slice is computed
// once per deal and shared read-only by every pillar calculator.
func DiscountFactors(horizonYears int, rate decimal.Decimal) []decimal.Decimal {
	factors := make([]decimal.Decimal, 0, horizonYears)
	base := decimal.NewFromInt(1).Add(rate)
	factor := decimal.NewFromInt(1)
	for t := 0; t < horizonYears; t++ {
		factor = factor.Div(base)
		factors = append(factors, factor)
	}
	return factors
}

// PVCost discounts the investment's cost stream: upfront capex plus the
// discounted annual opex over the horizon. The opex series has exactly one
// entry per factor; the validation layer enforces the length match.
func PVCost(deal *domain.Deal, factors []decimal.Decimal) decimal.Decimal {
	pv := deal.Investment.CapexUpfront
	for t, opex := range deal.Investment.OpexAnnual {
		pv = pv.Add(factors[t].Mul(opex))
	}
	return pv
}

// clamp bounds x to [lo, hi].
func clamp(x, lo, hi decimal.Decimal) decimal.Decimal {
	if x.LessThan(lo) {
		return lo
	}
	if x.GreaterThan(hi) {
		return hi
	}
	return x
}
