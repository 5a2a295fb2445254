package merge

import (
	"fmt"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
)

// Name identifies a merge strategy in decisions, reports, and overrides.
type Name string

const (
	PrimaryKey         Name = "primary_key"
	MergeLists         Name = "merge_lists"
	ConcatenateStrings Name = "concatenate_strings"
	LatestDate         Name = "latest_date"
	PrioritizeStatus   Name = "prioritize_status"
	MaxNumeric         Name = "max_numeric"
	PrioritizeYes      Name = "prioritize_yes"
	FirstNonNull       Name = "first_non_null"
)

// Strategy confidences are fixed per strategy, not computed. confNoValue is
// used whenever a strategy had nothing usable to work with and returned null.
const (
	confPrimaryKey         = 1.0
	confMergeLists         = 0.9
	confLatestDate         = 0.85
	confConcatenateStrings = 0.8
	confMaxNumeric         = 0.8
	confPrioritizeYes      = 0.8
	confPrioritizeStatus   = 0.75
	confFirstNonNull       = 0.5
	confNoValue            = 0.0
)

// Result is a strategy's resolution of one conflicting field.
type Result struct {
	Value      any
	Confidence float64
	// Notes records non-fatal anomalies (unparseable values excluded,
	// nothing usable found). They end up on the merge decision.
	Notes []string
}

// Func resolves one field's conflicting values. Values arrive in first-seen
// order (group member order), present fields only: a nil entry is an
// explicit null, absence contributes no entry. Funcs are pure and safe for
// concurrent use.
type Func func(values []any) Result

// defaultDispatch is the fixed kind -> strategy table.
func defaultDispatch() map[fieldkind.Kind]Name {
	return map[fieldkind.Kind]Name{
		fieldkind.Identifier: PrimaryKey,
		fieldkind.List:       MergeLists,
		fieldkind.Comment:    ConcatenateStrings,
		fieldkind.Date:       LatestDate,
		fieldkind.Status:     PrioritizeStatus,
		fieldkind.Numeric:    MaxNumeric,
		fieldkind.Boolean:    PrioritizeYes,
		fieldkind.Other:      FirstNonNull,
	}
}

// Registry resolves a field to its strategy: per-field overrides first,
// then the kind dispatch table. Read-only after construction, safe to share
// across group workers.
type Registry struct {
	byName    map[Name]Func
	byKind    map[fieldkind.Kind]Name
	overrides map[string]Name
}

// NewRegistry builds the strategy set. statusRanking feeds
// prioritize_status; overrides map field names to strategy names and are
// validated here so a misspelled strategy fails at construction.
func NewRegistry(statusRanking []string, overrides map[string]Name) (*Registry, error) {
	r := &Registry{
		byName: map[Name]Func{
			PrimaryKey:         primaryKey,
			MergeLists:         mergeLists,
			ConcatenateStrings: concatenateStrings,
			LatestDate:         latestDate,
			PrioritizeStatus:   prioritizeStatus(statusRanking),
			MaxNumeric:         maxNumeric,
			PrioritizeYes:      prioritizeYes,
			FirstNonNull:       firstNonNull,
		},
		byKind:    defaultDispatch(),
		overrides: make(map[string]Name, len(overrides)),
	}
	for field, name := range overrides {
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("merge: override for field %q: unknown strategy %q", field, name)
		}
		r.overrides[field] = name
	}
	return r, nil
}

// Resolve returns the strategy for a field of the given kind.
func (r *Registry) Resolve(field string, kind fieldkind.Kind) (Name, Func) {
	if name, ok := r.overrides[field]; ok {
		return name, r.byName[name]
	}
	name := r.byKind[kind]
	if name == "" {
		name = FirstNonNull
	}
	return name, r.byName[name]
}
