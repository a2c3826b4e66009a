package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// NoteSource tags where a data point came from.
type NoteSource string

const (
	SourceProvided  NoteSource = "provided"
	SourceAssumed   NoteSource = "assumed"
	SourceEstimated NoteSource = "estimated"
)

// Note is a free-text annotation carried alongside a pillar dataset so a
// reviewer can see which numbers were measured and which were guessed.
type Note struct {
	Text   string     `yaml:"text" json:"text"`
	Source NoteSource `yaml:"source" json:"source"`
}

// Company describes the business behind a deal.
type Company struct {
	Industry     string           `yaml:"industry" json:"industry"`
	Revenue      *decimal.Decimal `yaml:"revenue,omitempty" json:"revenue,omitempty"`
	EBITDAMargin *decimal.Decimal `yaml:"ebitda_margin,omitempty" json:"ebitdaMargin,omitempty"`
}

// Meta holds the deal-level assumptions every pillar shares.
type Meta struct {
	Company      Company         `yaml:"company" json:"company"`
	HorizonYears int             `yaml:"horizon_years" json:"horizonYears"`
	DiscountRate decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
	Currency     string          `yaml:"currency" json:"currency"`
}

// Investment is the cost side of the deal: upfront capex plus one opex
// figure per horizon year.
type Investment struct {
	CapexUpfront decimal.Decimal   `yaml:"capex_upfront" json:"capexUpfront"`
	OpexAnnual   []decimal.Decimal `yaml:"opex_annual" json:"opexAnnual"`
}

// V1CapitalProductivity is the recurring free-cash-flow benefit stream, one
// entry per horizon year.
type V1CapitalProductivity struct {
	FCFBenefitAnnual []decimal.Decimal `yaml:"fcf_benefit_annual" json:"fcfBenefitAnnual"`
	Notes            []Note            `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// RiskEvent is one loss event with pre- (p0/L0) and post-investment (p1/L1)
// annual probability and loss magnitude.
type RiskEvent struct {
	Name string          `yaml:"name" json:"name"`
	P0   decimal.Decimal `yaml:"p0" json:"p0"`
	P1   decimal.Decimal `yaml:"p1" json:"p1"`
	L0   decimal.Decimal `yaml:"L0" json:"L0"`
	L1   decimal.Decimal `yaml:"L1" json:"L1"`
}

// Initiative is a strategic initiative the investment accelerates.
type Initiative struct {
	Name          string          `yaml:"name" json:"name"`
	MonthsAccel   decimal.Decimal `yaml:"months_accel" json:"monthsAccel"`
	MonthlyProfit decimal.Decimal `yaml:"monthly_profit" json:"monthlyProfit"`
	Prob          decimal.Decimal `yaml:"prob" json:"prob"`
}

// OptionOpportunity is a future opportunity the investment makes easier to
// exercise. NPVIfPursued is already a present value.
type OptionOpportunity struct {
	Name                    string          `yaml:"name" json:"name"`
	Prob                    decimal.Decimal `yaml:"prob" json:"prob"`
	NPVIfPursued            decimal.Decimal `yaml:"npv_if_pursued" json:"npvIfPursued"`
	FeasibilityLift         decimal.Decimal `yaml:"feasibility_lift" json:"feasibilityLift"`
	ExerciseCostReductionPV decimal.Decimal `yaml:"exercise_cost_reduction_pv" json:"exerciseCostReductionPv"`
}

// OQIScores are the four qualitative sub-scores (0-5 each) behind the
// Optionality Quality Index.
type OQIScores struct {
	Flexibility   decimal.Decimal `yaml:"flexibility" json:"flexibility"`
	Portability   decimal.Decimal `yaml:"portability" json:"portability"`
	DataLiquidity decimal.Decimal `yaml:"data_liquidity" json:"dataLiquidity"`
	Scalability   decimal.Decimal `yaml:"scalability" json:"scalability"`
}

// ResilienceScenario is one outage scenario with annual probability,
// recovery time before (mttr0) and after (mttr1) the investment, and the
// hourly cost of downtime.
type ResilienceScenario struct {
	Name        string          `yaml:"name" json:"name"`
	P           decimal.Decimal `yaml:"p" json:"p"`
	MTTR0Hours  decimal.Decimal `yaml:"mttr0_hours" json:"mttr0Hours"`
	MTTR1Hours  decimal.Decimal `yaml:"mttr1_hours" json:"mttr1Hours"`
	CostPerHour decimal.Decimal `yaml:"cost_per_hour" json:"costPerHour"`
}

// Confidence holds the per-pillar confidence values in [0,1].
type Confidence struct {
	V1 decimal.Decimal `yaml:"v1" json:"v1"`
	V2 decimal.Decimal `yaml:"v2" json:"v2"`
	V3 decimal.Decimal `yaml:"v3" json:"v3"`
	V4 decimal.Decimal `yaml:"v4" json:"v4"`
	V5 decimal.Decimal `yaml:"v5" json:"v5"`
}

// DefaultConfidence returns the directional-estimate default of 0.3 per pillar.
func DefaultConfidence() Confidence {
	c := decimal.NewFromFloat(0.3)
	return Confidence{V1: c, V2: c, V3: c, V4: c, V5: c}
}

// UnmarshalYAML fills unspecified pillars with the 0.3 default so a deal file
// can override confidence for only the pillars it populated.
func (c *Confidence) UnmarshalYAML(value *yaml.Node) error {
	type rawConfidence Confidence
	raw := rawConfidence(DefaultConfidence())
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Confidence(raw)
	return nil
}

// For returns the confidence value for the given pillar.
func (c Confidence) For(p Pillar) decimal.Decimal {
	switch p {
	case PillarV1:
		return c.V1
	case PillarV2:
		return c.V2
	case PillarV3:
		return c.V3
	case PillarV4:
		return c.V4
	case PillarV5:
		return c.V5
	default:
		return decimal.Zero
	}
}

// Deal is one validated investment under evaluation. Pillar datasets are
// optional; an absent dataset contributes zero benefit.
type Deal struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Investment Investment `yaml:"investment" json:"investment"`

	V1CapitalProductivity *V1CapitalProductivity `yaml:"v1_capital_productivity,omitempty" json:"v1CapitalProductivity,omitempty"`
	V2RiskEvents          []RiskEvent            `yaml:"v2_risk_events,omitempty" json:"v2RiskEvents,omitempty"`
	V3Initiatives         []Initiative           `yaml:"v3_initiatives,omitempty" json:"v3Initiatives,omitempty"`
	V4Options             []OptionOpportunity    `yaml:"v4_options,omitempty" json:"v4Options,omitempty"`
	V4OQI                 *OQIScores             `yaml:"v4_oqi,omitempty" json:"v4Oqi,omitempty"`
	V5Resilience          []ResilienceScenario   `yaml:"v5_resilience,omitempty" json:"v5Resilience,omitempty"`

	Confidence      Confidence `yaml:"confidence" json:"confidence"`
	AssumptionsUsed []string   `yaml:"assumptions_used,omitempty" json:"assumptionsUsed,omitempty"`
}

// The With* constructors below build perturbed deal variants by replacing a
// single pillar dataset with a freshly allocated one. The receiver is taken
// by value, so callers never share mutable state with the variant: the only
// field that differs points at data the caller just built.

// WithV1FCF returns a deal variant whose V1 benefit series is the given slice.
func (d Deal) WithV1FCF(series []decimal.Decimal) Deal {
	v1 := V1CapitalProductivity{FCFBenefitAnnual: series}
	if d.V1CapitalProductivity != nil {
		v1.Notes = d.V1CapitalProductivity.Notes
	}
	d.V1CapitalProductivity = &v1
	return d
}

// WithRiskEvents returns a deal variant with the given V2 risk events.
func (d Deal) WithRiskEvents(events []RiskEvent) Deal {
	d.V2RiskEvents = events
	return d
}

// WithInitiatives returns a deal variant with the given V3 initiatives.
func (d Deal) WithInitiatives(initiatives []Initiative) Deal {
	d.V3Initiatives = initiatives
	return d
}

// WithResilience returns a deal variant with the given V5 scenarios.
func (d Deal) WithResilience(scenarios []ResilienceScenario) Deal {
	d.V5Resilience = scenarios
	return d
}
