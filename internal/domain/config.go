package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WeightSumTolerance is how far the pillar weights may drift from 1.0
// before the configuration is rejected.
const WeightSumTolerance = 1e-6

// ScoringConfig controls how pillar ratios are turned into the EVI:
// per-pillar weights plus the logistic steepness (a) and midpoint (b).
// Construct via NewScoringConfig or DefaultScoringConfig so the weight-sum
// invariant holds for every instance in circulation.
type ScoringConfig struct {
	Weights   map[Pillar]decimal.Decimal `yaml:"weights" json:"weights"`
	LogisticA decimal.Decimal            `yaml:"logistic_a" json:"logisticA"`
	LogisticB decimal.Decimal            `yaml:"logistic_b" json:"logisticB"`
}

// DefaultWeights returns the standard pillar weighting.
func DefaultWeights() map[Pillar]decimal.Decimal {
	return map[Pillar]decimal.Decimal{
		PillarV1: decimal.NewFromFloat(0.25),
		PillarV2: decimal.NewFromFloat(0.20),
		PillarV3: decimal.NewFromFloat(0.20),
		PillarV4: decimal.NewFromFloat(0.20),
		PillarV5: decimal.NewFromFloat(0.15),
	}
}

// DefaultScoringConfig returns the standard configuration: default weights,
// a=6.0, b=0.10.
func DefaultScoringConfig() *ScoringConfig {
	cfg, err := NewScoringConfig(DefaultWeights(), decimal.NewFromFloat(6.0), decimal.NewFromFloat(0.10))
	if err != nil {
		// The defaults satisfy their own invariant; this is unreachable.
		panic(err)
	}
	return cfg
}

// NewScoringConfig validates and builds a scoring configuration. It fails if
// any pillar weight is missing or negative, the weights do not sum to 1.0
// within WeightSumTolerance, or the logistic steepness is not positive.
func NewScoringConfig(weights map[Pillar]decimal.Decimal, logisticA, logisticB decimal.Decimal) (*ScoringConfig, error) {
	if !logisticA.IsPositive() {
		return nil, fmt.Errorf("logistic steepness must be positive, got %s", logisticA)
	}

	sum := decimal.Zero
	own := make(map[Pillar]decimal.Decimal, len(AllPillars()))
	for _, p := range AllPillars() {
		w, ok := weights[p]
		if !ok {
			return nil, fmt.Errorf("missing weight for pillar %s", p)
		}
		if w.IsNegative() {
			return nil, fmt.Errorf("weight for pillar %s cannot be negative, got %s", p, w)
		}
		own[p] = w
		sum = sum.Add(w)
	}
	if len(weights) != len(own) {
		return nil, fmt.Errorf("weights contain unknown pillar keys")
	}

	tolerance := decimal.NewFromFloat(WeightSumTolerance)
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("pillar weights must sum to 1.0, got %s", sum)
	}

	return &ScoringConfig{
		Weights:   own,
		LogisticA: logisticA,
		LogisticB: logisticB,
	}, nil
}
