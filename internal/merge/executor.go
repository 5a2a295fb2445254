package merge

import (
	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// mergeGroup resolves one duplicate group into one record. Singleton groups
// pass through untouched (no metadata, WasMerged false). For larger groups
// the merged field set is the union of all member field sets: equal values
// copy silently, conflicting values go through kind classification and
// strategy dispatch, each producing a Decision. Pure; no I/O.
func mergeGroup(g Group, classifier *fieldkind.Classifier, reg *Registry) (record.Record, *Metadata) {
	if len(g.Records) == 1 {
		return g.Records[0], nil
	}

	merged := make(record.Record)
	var decisions []Decision
	var differing []string

	for _, field := range record.UnionFieldNames(g.Records) {
		values := make([]any, 0, len(g.Records))
		for _, r := range g.Records {
			if v, ok := r.Get(field); ok {
				values = append(values, v)
			}
		}

		if allEqual(values) {
			merged.Set(field, values[0])
			continue
		}

		kind := classifier.Classify(field)
		name, fn := reg.Resolve(field, kind)
		res := fn(values)
		merged.Set(field, res.Value)
		differing = append(differing, field)
		decisions = append(decisions, Decision{
			Field:            field,
			Kind:             kind,
			Strategy:         name,
			ValuesConsidered: values,
			MergedValue:      res.Value,
			Confidence:       res.Confidence,
			Notes:            res.Notes,
		})
	}

	meta := &Metadata{
		WasMerged:           true,
		OriginalRecordCount: len(g.Records),
		DifferingFields:     differing,
		Decisions:           decisions,
	}
	return merged, meta
}

// allEqual reports whether every value equals the first. values is never
// empty here: a union field name is present in at least one member.
func allEqual(values []any) bool {
	for _, v := range values[1:] {
		if !record.Equal(values[0], v) {
			return false
		}
	}
	return true
}
