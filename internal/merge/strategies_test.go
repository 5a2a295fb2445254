package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrimaryKey(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"first non-null wins", []any{nil, "AR-7", "AR-9"}, "AR-7", 1.0},
		{"single value", []any{"AR-7"}, "AR-7", 1.0},
		{"all null", []any{nil, nil}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := primaryKey(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("primaryKey(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestMergeLists(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   []string
	}{
		{
			"flatten and dedup first-seen",
			[]any{[]string{"a", "b"}, []string{"b", "c"}},
			[]string{"a", "b", "c"},
		},
		{
			"scalars become single-element lists",
			[]any{"Bearing wear", []string{"Bearing wear", "Poor lubrication"}},
			[]string{"Bearing wear", "Poor lubrication"},
		},
		{
			"exact equality, case kept",
			[]any{[]string{"Seal"}, []string{"seal"}},
			[]string{"Seal", "seal"},
		},
		{
			"nulls and empty scalars contribute nothing",
			[]any{nil, "", []string{"x"}},
			[]string{"x"},
		},
		{
			"all null yields empty list",
			[]any{nil, []string{}},
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeLists(tt.values)
			if diff := cmp.Diff(tt.want, got.Value); diff != "" {
				t.Errorf("mergeLists(%v) mismatch (-want +got):\n%s", tt.values, diff)
			}
			if got.Confidence != 0.9 {
				t.Errorf("mergeLists confidence = %v, want 0.9", got.Confidence)
			}
		})
	}
}

func TestConcatenateStrings(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"joins distinct", []any{"Note 1", "Note 2"}, "Note 1 | Note 2", 0.8},
		{"dedups identical", []any{"Note 1", "Note 1"}, "Note 1", 0.8},
		{"excludes null and empty", []any{"", nil, "Note 1"}, "Note 1", 0.8},
		{"first-seen order", []any{"b", "a", "b"}, "b | a", 0.8},
		{"nothing usable", []any{nil, ""}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := concatenateStrings(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("concatenateStrings(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestLatestDate(t *testing.T) {
	tests := []struct {
		name      string
		values    []any
		want      any
		conf      float64
		wantNotes int
	}{
		{"max wins", []any{"2023-01-05", "2022-12-01"}, "2023-01-05", 0.85, 0},
		{"original representation kept", []any{"2022-12-01", "05/01/2023"}, "05/01/2023", 0.85, 0},
		{"unparseable excluded with note", []any{"not a date", "2023-01-05"}, "2023-01-05", 0.85, 1},
		{"nothing parses", []any{"n/a", "pending"}, nil, 0.0, 3},
		{"all null", []any{nil, ""}, nil, 0.0, 1},
		{"tie keeps first seen", []any{"2023-01-05", "2023-01-05T00:00:00Z"}, "2023-01-05", 0.85, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := latestDate(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("latestDate(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
			if len(got.Notes) != tt.wantNotes {
				t.Errorf("latestDate(%v) notes = %v, want %d entries", tt.values, got.Notes, tt.wantNotes)
			}
		})
	}
}

func TestPrioritizeStatus(t *testing.T) {
	fn := prioritizeStatus([]string{"Closed", "In Progress", "Open"})

	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"most advanced wins", []any{"Open", "Closed"}, "Closed", 0.75},
		{"case-insensitive match, original casing returned", []any{"open", "in progress"}, "in progress", 0.75},
		{"unrecognized ranks below known", []any{"Weird State", "Open"}, "Open", 0.75},
		{"all unrecognized keeps first seen", []any{"Weird", "Stranger"}, "Weird", 0.75},
		{"all null", []any{nil, ""}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fn(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("prioritizeStatus(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestMaxNumeric(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"max wins", []any{float64(3), float64(14)}, float64(14), 0.8},
		{"null excluded", []any{float64(5), nil}, float64(5), 0.8},
		{"numeric strings parse, original kept", []any{"12", float64(9)}, "12", 0.8},
		{"unparseable excluded", []any{"n/a", float64(2)}, float64(2), 0.8},
		{"nothing numeric", []any{"n/a", nil}, nil, 0.0},
		{"tie keeps first seen", []any{"7", float64(7)}, "7", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxNumeric(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("maxNumeric(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestPrioritizeYes(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"yes wins", []any{"No", "Yes"}, "Yes", 0.8},
		{"true counts as yes", []any{"No", true}, "Yes", 0.8},
		{"case-insensitive", []any{"YES"}, "Yes", 0.8},
		{"no affirmative falls back to first non-null", []any{nil, "No"}, "No", 0.8},
		{"all null", []any{nil, nil}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prioritizeYes(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("prioritizeYes(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

func TestFirstNonNull(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
		conf   float64
	}{
		{"skips null and empty", []any{nil, "", "value"}, "value", 0.5},
		{"zero is a value", []any{nil, float64(0)}, float64(0), 0.5},
		{"false is a value", []any{false, "x"}, false, 0.5},
		{"nothing usable", []any{nil, ""}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstNonNull(tt.values)
			if !valueEq(got.Value, tt.want) || got.Confidence != tt.conf {
				t.Errorf("firstNonNull(%v) = (%v, %v), want (%v, %v)",
					tt.values, got.Value, got.Confidence, tt.want, tt.conf)
			}
		})
	}
}

// valueEq compares strategy results including nil and list values.
func valueEq(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	return cmp.Equal(a, b)
}
