package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityEntry is the impact of one perturbation scenario on the EVI.
type SensitivityEntry struct {
	Factor   string          `yaml:"factor" json:"factor"`
	Label    string          `yaml:"label" json:"label"`
	DeltaEVI decimal.Decimal `yaml:"delta_evi" json:"deltaEvi"`
}

// LogisticParams echoes the ratio-to-score transform used for a result.
type LogisticParams struct {
	A decimal.Decimal `yaml:"logistic_a" json:"logisticA"`
	B decimal.Decimal `yaml:"logistic_b" json:"logisticB"`
}

// Result is the complete scoring output for one deal. It is derived fresh on
// every invocation and never mutated afterwards.
type Result struct {
	PVCost           decimal.Decimal            `json:"pvCost"`
	PillarPVBenefits map[Pillar]decimal.Decimal `json:"pillarPvBenefits"`
	PillarRatios     map[Pillar]decimal.Decimal `json:"pillarRatios"`
	PillarScores     map[Pillar]decimal.Decimal `json:"pillarScores"`
	Weights          map[Pillar]decimal.Decimal `json:"weights"`

	// EVI is the headline weighted pillar score on the 0-100 scale.
	EVI decimal.Decimal `json:"evi"`
	// EVIConf discounts each pillar score by its stated confidence.
	EVIConf decimal.Decimal `json:"eviConf"`
	// ConfidenceWeighted is the weighted-average confidence, independent of
	// the scores, reported so a reader knows how much of EVI to trust.
	ConfidenceWeighted decimal.Decimal `json:"confidenceWeighted"`

	Warnings      []string           `json:"warnings"`
	Sensitivities []SensitivityEntry `json:"sensitivities"`
	Logistic      LogisticParams     `json:"config"`
}
