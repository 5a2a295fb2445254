// Package record defines the domain-agnostic record model used across the
// merge pipeline: a record is a mapping from field name to value, where a
// value is null, a string, a number, a boolean, or an ordered list of
// strings. Absent fields, present-but-null fields, and empty strings are
// three distinct states and every consumer of this package must preserve
// that distinction.
//
// This package has zero imports from other pipeline packages. Engine,
// dataset, and store layers all speak record.Record.
package record

import "sort"

// Reserved field names attached to merged records. The engine strips them
// from input on ingest, so re-merging previously merged output stays clean.
const (
	FieldWasMerged     = "_was_merged"
	FieldMergeMetadata = "_merge_metadata"
)

// IsReserved reports whether name is one of the engine-owned metadata fields.
func IsReserved(name string) bool {
	return name == FieldWasMerged || name == FieldMergeMetadata
}

// Record is one semi-structured record: field name -> value. A nil map is a
// valid empty record. Values are expected in normalized form (see Normalize):
// nil, string, float64, bool, or []string.
type Record map[string]any

// Has reports whether the field is present at all, null or not.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Get returns the field value and whether the field is present. A present
// field may still hold nil (explicit null).
func (r Record) Get(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Set writes a field value. The receiver must be non-nil.
func (r Record) Set(name string, value any) {
	r[name] = value
}

// Clone returns a deep copy. List values are copied so mutations of the
// clone never alias the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// FieldNames returns all field names sorted lexically. Sorted order is the
// canonical iteration order everywhere a deterministic walk is needed; it
// matches the key order encoding/json uses when marshaling the record.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UnionFieldNames returns the sorted union of field names across records.
func UnionFieldNames(records []Record) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		for k := range r {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
