package merge

import (
	"fmt"

	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// Validate runs the pre-merge structural checks without merging: the same
// rejection rules Engine.Merge applies before touching any record.
func Validate(records []record.Record, keyField string) error {
	return preValidate(records, keyField)
}

// preValidate rejects input the engine cannot merge: an empty dataset, nil
// records, or a key field that no record in the dataset carries (a config
// typo, not a data property). Records merely missing the key field pass;
// the grouper flags them keyless.
func preValidate(records []record.Record, keyField string) error {
	if len(records) == 0 {
		return &StructuralError{Reason: "empty input record set", RecordIndex: -1}
	}
	keySeen := false
	for i, r := range records {
		if r == nil {
			return &StructuralError{Reason: "record is nil", RecordIndex: i}
		}
		if r.Has(keyField) {
			keySeen = true
		}
	}
	if !keySeen {
		return &StructuralError{
			Reason:      fmt.Sprintf("key field %q not present in any record", keyField),
			RecordIndex: -1,
		}
	}
	return nil
}

// postValidate enforces the run-level invariants on the finished batch:
// count arithmetic, value traceability, and no merged record claiming
// WasMerged with an empty decision log unless its group was conflict-free.
// Violations are fatal for the run and name the group and invariant; the
// validator never repairs or drops anything.
func postValidate(groups []Group, outputs []record.Record, metas []*Metadata) error {
	dropped := 0
	inputTotal := 0
	for _, g := range groups {
		inputTotal += len(g.Records)
		if len(g.Records) > 1 {
			dropped += len(g.Records) - 1
		}
	}
	if len(outputs) != inputTotal-dropped {
		return &IntegrityError{
			Invariant: InvariantRecordCount,
			Detail:    fmt.Sprintf("expected %d output records, got %d", inputTotal-dropped, len(outputs)),
		}
	}

	for i, g := range groups {
		if len(g.Records) == 1 {
			continue
		}
		out, meta := outputs[i], metas[i]

		if err := checkTraceability(g, out, meta); err != nil {
			return err
		}

		if meta.WasMerged && len(meta.Decisions) == 0 && hasConflicts(g) {
			return &IntegrityError{
				GroupKey:  g.Key,
				Invariant: InvariantDecisionsPresent,
				Detail:    "group had conflicting values but no decisions were recorded",
			}
		}
	}
	return nil
}

// checkTraceability verifies no value disappeared without an audit trail:
// every field value present in any source record must survive either as an
// unchanged copy in the output or as one of the values considered in that
// field's decision.
func checkTraceability(g Group, out record.Record, meta *Metadata) error {
	considered := make(map[string][]any, len(meta.Decisions))
	for _, d := range meta.Decisions {
		considered[d.Field] = d.ValuesConsidered
	}
	for _, src := range g.Records {
		for field, v := range src {
			outV, ok := out.Get(field)
			if ok && record.Equal(outV, v) {
				continue
			}
			if traced(considered[field], v) {
				continue
			}
			return &IntegrityError{
				GroupKey:  g.Key,
				Invariant: InvariantValueTraceable,
				Detail:    fmt.Sprintf("field %q value %v is neither copied nor recorded in a decision", field, v),
			}
		}
	}
	return nil
}

func traced(considered []any, v any) bool {
	for _, c := range considered {
		if record.Equal(c, v) {
			return true
		}
	}
	return false
}

// hasConflicts reports whether any union field of the group carries two
// unequal present values.
func hasConflicts(g Group) bool {
	for _, field := range record.UnionFieldNames(g.Records) {
		values := make([]any, 0, len(g.Records))
		for _, r := range g.Records {
			if v, ok := r.Get(field); ok {
				values = append(values, v)
			}
		}
		if !allEqual(values) {
			return true
		}
	}
	return false
}
