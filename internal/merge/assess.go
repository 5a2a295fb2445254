package merge

import (
	"fmt"
	"strings"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// riskConfidenceFloor: any decision below this confidence makes the whole
// group at least medium risk.
const riskConfidenceFloor = 0.6

// Assessment is the complexity/risk verdict for one merged group.
type Assessment struct {
	Complexity Complexity
	Risk       Risk
	Warnings   []string
}

// assess grades a merge from its decisions. Complexity counts differing
// fields against the thresholds. Risk: a conflicting identifier (two
// distinct non-null values in an identifier-kind field of one "duplicate"
// group) is high and warned about prominently, since it suggests the
// grouping key itself is wrong; any low-confidence decision is medium;
// otherwise low.
func assess(decisions []Decision, lowMax, mediumMax int) Assessment {
	a := Assessment{Complexity: ComplexityLow, Risk: RiskLow}

	switch n := len(decisions); {
	case n > mediumMax:
		a.Complexity = ComplexityHigh
	case n > lowMax:
		a.Complexity = ComplexityMedium
	}

	lowConfidence := false
	for _, d := range decisions {
		if d.Kind == fieldkind.Identifier && countDistinctNonNull(d.ValuesConsidered) > 1 {
			a.Risk = RiskHigh
			a.Warnings = append(a.Warnings, fmt.Sprintf(
				"conflicting identifier values in field %q: %s",
				d.Field, renderValues(d.ValuesConsidered)))
		}
		if d.Confidence < riskConfidenceFloor {
			lowConfidence = true
		}
	}
	if a.Risk != RiskHigh && lowConfidence {
		a.Risk = RiskMedium
	}
	return a
}

func countDistinctNonNull(values []any) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if v == nil {
			continue
		}
		seen[record.CanonicalString(v)] = struct{}{}
	}
	return len(seen)
}

func renderValues(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%q", record.CanonicalString(v)))
	}
	return strings.Join(parts, ", ")
}
