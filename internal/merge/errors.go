package merge

import "fmt"

// StructuralError reports input that cannot be merged at all: an empty
// dataset, a nil record, or a key field no record in the dataset carries.
// It aborts the batch before any merging happens.
type StructuralError struct {
	Reason string
	// RecordIndex is the offending record's position in the input, or -1
	// when the problem is dataset-wide.
	RecordIndex int
}

func (e *StructuralError) Error() string {
	if e.RecordIndex >= 0 {
		return fmt.Sprintf("merge: structural error at record %d: %s", e.RecordIndex, e.Reason)
	}
	return fmt.Sprintf("merge: structural error: %s", e.Reason)
}

// IntegrityError reports a post-merge invariant violation. The batch output
// must not be treated as valid; nothing is silently dropped or repaired.
type IntegrityError struct {
	GroupKey  string
	Invariant string
	Detail    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("merge: integrity violation in group %q: %s: %s", e.GroupKey, e.Invariant, e.Detail)
}

// Invariant names used in IntegrityError and its tests.
const (
	InvariantRecordCount      = "record count arithmetic"
	InvariantValueTraceable   = "value traceability"
	InvariantDecisionsPresent = "merged record without decisions"
)
