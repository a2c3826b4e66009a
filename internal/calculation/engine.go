package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/evengine/evi/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrDegenerateCost is returned when the discounted cost of a deal is not
// positive. Benefit ratios and the logistic transform divide by PV cost, so
// a free deal has no meaningful score.
var ErrDegenerateCost = errors.New("present value of cost must be positive")

// ScoringEngine computes the EVI for a validated deal. It holds no state
// between invocations; scoring the same deal twice yields identical results.
type ScoringEngine struct {
	Config *domain.ScoringConfig
	Logger Logger
}

// NewScoringEngine creates an engine with the default scoring configuration.
func NewScoringEngine() *ScoringEngine {
	return NewScoringEngineWithConfig(domain.DefaultScoringConfig())
}

// NewScoringEngineWithConfig creates an engine with a custom configuration.
// The config must come from domain.NewScoringConfig so the weight-sum
// invariant already holds.
func NewScoringEngineWithConfig(cfg *domain.ScoringConfig) *ScoringEngine {
	return &ScoringEngine{
		Config: cfg,
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger.
func (e *ScoringEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	e.Logger = logger
}

// Score runs the full pipeline including sensitivity analysis and returns
// the result, or an error and no result at all.
func (e *ScoringEngine) Score(deal *domain.Deal) (*domain.Result, error) {
	return e.score(deal, true)
}

// ScoreWithoutSensitivity runs the pipeline but skips the sensitivity loop.
func (e *ScoringEngine) ScoreWithoutSensitivity(deal *domain.Deal) (*domain.Result, error) {
	return e.score(deal, false)
}

func (e *ScoringEngine) score(deal *domain.Deal, runSensitivity bool) (*domain.Result, error) {
	factors := DiscountFactors(deal.Meta.HorizonYears, deal.Meta.DiscountRate)

	pvCost := PVCost(deal, factors)
	if !pvCost.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrDegenerateCost, pvCost.StringFixed(2))
	}
	e.Logger.Debugf("pv_cost=%s over %d years at rate %s",
		pvCost.StringFixed(2), deal.Meta.HorizonYears, deal.Meta.DiscountRate)

	benefits := make(map[domain.Pillar]decimal.Decimal, len(pillarCalculators))
	ratios := make(map[domain.Pillar]decimal.Decimal, len(pillarCalculators))
	scores := make(map[domain.Pillar]decimal.Decimal, len(pillarCalculators))
	for _, pc := range pillarCalculators {
		benefit := pc.Compute(deal, factors)
		ratio := benefit.Div(pvCost)
		benefits[pc.ID] = benefit
		ratios[pc.ID] = ratio
		scores[pc.ID] = LogisticScore(ratio, e.Config.LogisticA, e.Config.LogisticB)
		e.Logger.Debugf("pillar %s: pv_benefit=%s ratio=%s score=%s",
			pc.ID, benefit.StringFixed(2), ratio.StringFixed(4), scores[pc.ID].StringFixed(1))
	}

	one := decimal.NewFromInt(1)
	evi := decimal.Zero
	eviConf := decimal.Zero
	confidenceWeighted := decimal.Zero
	for _, p := range domain.AllPillars() {
		weight := e.Config.Weights[p]
		confidence := clamp(deal.Confidence.For(p), decimal.Zero, one)
		evi = evi.Add(weight.Mul(scores[p]))
		eviConf = eviConf.Add(weight.Mul(confidence).Mul(scores[p]))
		confidenceWeighted = confidenceWeighted.Add(weight.Mul(confidence))
	}

	warnings := DetectDoubleCounting(deal)
	for _, w := range warnings {
		e.Logger.Warnf("%s", w)
	}

	result := &domain.Result{
		PVCost:             pvCost,
		PillarPVBenefits:   benefits,
		PillarRatios:       ratios,
		PillarScores:       scores,
		Weights:            e.Config.Weights,
		EVI:                evi,
		EVIConf:            eviConf,
		ConfidenceWeighted: confidenceWeighted,
		Warnings:           warnings,
		Sensitivities:      []domain.SensitivityEntry{},
		Logistic: domain.LogisticParams{
			A: e.Config.LogisticA,
			B: e.Config.LogisticB,
		},
	}

	if runSensitivity {
		sensitivities, err := NewSensitivityAnalyzer(e).Analyze(deal, evi)
		if err != nil {
			return nil, err
		}
		result.Sensitivities = sensitivities
	}

	return result, nil
}

// LogisticScore maps a benefit/cost ratio onto the bounded 0-100 scale:
// 100 / (1 + exp(-a*(ratio-b))). Strictly increasing in the ratio, exactly
// 50 at ratio=b, asymptotic to 0 and 100.
func LogisticScore(ratio, a, b decimal.Decimal) decimal.Decimal {
	x := a.Neg().Mul(ratio.Sub(b)).InexactFloat64()
	return decimal.NewFromFloat(100.0 / (1.0 + math.Exp(x)))
}
