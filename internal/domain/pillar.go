package domain

// Pillar identifies one of the five value pillars that make up the EVI.
type Pillar string

const (
	PillarV1 Pillar = "v1" // capital productivity
	PillarV2 Pillar = "v2" // risk compression
	PillarV3 Pillar = "v3" // strategic velocity
	PillarV4 Pillar = "v4" // optionality
	PillarV5 Pillar = "v5" // resilience
)

// AllPillars returns the five pillars in their canonical reporting order.
func AllPillars() []Pillar {
	return []Pillar{PillarV1, PillarV2, PillarV3, PillarV4, PillarV5}
}

// Label returns the human-readable name for a pillar.
func (p Pillar) Label() string {
	switch p {
	case PillarV1:
		return "Capital Productivity"
	case PillarV2:
		return "Risk Compression"
	case PillarV3:
		return "Strategic Velocity"
	case PillarV4:
		return "Optionality"
	case PillarV5:
		return "Resilience"
	default:
		return string(p)
	}
}
