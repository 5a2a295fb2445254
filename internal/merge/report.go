package merge

import "time"

// GroupReport is the audit view of one duplicate group: what it was keyed
// on, how hard the merge was, how risky, and every decision taken. Intended
// for review, not for downstream processing.
type GroupReport struct {
	Key             string     `json:"key"`
	Keyless         bool       `json:"keyless,omitempty"`
	Size            int        `json:"size"`
	WasMerged       bool       `json:"was_merged"`
	Complexity      Complexity `json:"complexity"`
	Risk            Risk       `json:"risk"`
	Warnings        []string   `json:"warnings,omitempty"`
	DifferingFields []string   `json:"differing_fields,omitempty"`
	Decisions       []Decision `json:"decisions,omitempty"`
}

// Report is the full audit trail of one merge run.
type Report struct {
	RunID        string        `json:"run_id"`
	CreatedAt    time.Time     `json:"created_at"`
	KeyField     string        `json:"key_field"`
	InputCount   int           `json:"input_count"`
	OutputCount  int           `json:"output_count"`
	GroupCount   int           `json:"group_count"`
	MergedGroups int           `json:"merged_groups"`
	KeylessCount int           `json:"keyless_count"`
	Groups       []GroupReport `json:"groups"`
}

// HighRiskGroups returns the groups flagged high risk, for prominent
// surfacing in report rendering.
func (r *Report) HighRiskGroups() []GroupReport {
	var out []GroupReport
	for _, g := range r.Groups {
		if g.Risk == RiskHigh {
			out = append(out, g)
		}
	}
	return out
}

// DuplicatesRemoved is the number of input records folded away by merging.
func (r *Report) DuplicatesRemoved() int {
	return r.InputCount - r.OutputCount
}
