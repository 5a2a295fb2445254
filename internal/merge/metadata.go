package merge

import (
	"time"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
)

// Complexity grades how much conflict resolution a merge needed, from the
// count of differing fields against configured thresholds.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Risk grades how trustworthy a merge is, from the strategy mix.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Decision is the audit record for one conflicting field: every value that
// was considered, what the strategy produced, and how confident it is.
// Decisions are never recorded for fields whose present values were equal.
type Decision struct {
	Field            string         `json:"field"`
	Kind             fieldkind.Kind `json:"kind"`
	Strategy         Name           `json:"strategy"`
	ValuesConsidered []any          `json:"values_considered"`
	MergedValue      any            `json:"merged_value"`
	Confidence       float64        `json:"confidence"`
	Notes            []string       `json:"notes,omitempty"`
}

// ValidationSummary is the per-group slice of the post-merge assessment.
type ValidationSummary struct {
	Integrity string   `json:"integrity"`
	Risk      Risk     `json:"risk"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Metadata is attached to every merged record under the reserved
// _merge_metadata field. Created once per merge, never mutated afterward.
type Metadata struct {
	WasMerged           bool              `json:"was_merged"`
	MergedAt            time.Time         `json:"merged_at"`
	OriginalRecordCount int               `json:"original_record_count"`
	Complexity          Complexity        `json:"complexity"`
	DifferingFields     []string          `json:"differing_fields"`
	Decisions           []Decision        `json:"decisions"`
	Validation          ValidationSummary `json:"validation"`
}
