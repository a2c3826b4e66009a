package calculation

import (
	"sort"
	"strings"

	"github.com/evengine/evi/internal/domain"
)

// DetectDoubleCounting flags incidents claimed by both V2 and V5. Names are
// compared case- and whitespace-insensitively; an overlap means the same
// loss event may be priced twice. Advisory only: scoring proceeds.
func DetectDoubleCounting(deal *domain.Deal) []string {
	v2Names := make(map[string]struct{}, len(deal.V2RiskEvents))
	for _, e := range deal.V2RiskEvents {
		v2Names[normalizeName(e.Name)] = struct{}{}
	}

	var overlap []string
	seen := make(map[string]struct{})
	for _, s := range deal.V5Resilience {
		name := normalizeName(s.Name)
		if _, dup := seen[name]; dup {
			continue
		}
		if _, ok := v2Names[name]; ok {
			overlap = append(overlap, name)
			seen[name] = struct{}{}
		}
	}
	if len(overlap) == 0 {
		return nil
	}
	sort.Strings(overlap)

	warning := "Potential double counting for: " + strings.Join(overlap, ", ") +
		". Ensure V2 captures probability/impact changes and V5 captures MTTR severity only."
	return []string{warning}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
