package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

func TestGroupRecords_FirstSeenOrder(t *testing.T) {
	records := []record.Record{
		{"Action Request Number": "2023-001", "Title": "a"},
		{"Action Request Number": "2023-002", "Title": "b"},
		{"Action Request Number": "2023-001", "Title": "c"},
		{"Action Request Number": "2023-003", "Title": "d"},
		{"Action Request Number": "2023-002", "Title": "e"},
	}
	groups := GroupRecords(records, "Action Request Number")

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	if diff := cmp.Diff([]string{"2023-001", "2023-002", "2023-003"}, keys); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}

	if len(groups[0].Records) != 2 || groups[0].Records[0]["Title"] != "a" || groups[0].Records[1]["Title"] != "c" {
		t.Errorf("group 2023-001 member order wrong: %v", groups[0].Records)
	}
}

func TestGroupRecords_EveryRecordInExactlyOneGroup(t *testing.T) {
	records := []record.Record{
		{"k": "x"}, {"k": "y"}, {"k": "x"}, {}, {"k": nil},
	}
	groups := GroupRecords(records, "k")

	total := 0
	for _, g := range groups {
		if len(g.Records) == 0 {
			t.Fatal("empty group")
		}
		total += len(g.Records)
	}
	if total != len(records) {
		t.Errorf("grouped %d records, want %d", total, len(records))
	}
}

func TestGroupRecords_KeylessSingletons(t *testing.T) {
	records := []record.Record{
		{"Title": "no key at all"},
		{"Action Request Number": nil, "Title": "null key"},
		{"Action Request Number": "", "Title": "empty key"},
		{"Title": "also no key"},
	}
	groups := GroupRecords(records, "Action Request Number")

	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4 keyless singletons", len(groups))
	}
	for i, g := range groups {
		if !g.Keyless {
			t.Errorf("group %d not flagged keyless", i)
		}
		if len(g.Records) != 1 {
			t.Errorf("keyless group %d has %d records, want 1", i, len(g.Records))
		}
	}
}

func TestGroupRecords_NumericKeysCanonicalized(t *testing.T) {
	// 14 and "14" group together under canonical string keys.
	records := []record.Record{
		{"k": float64(14)},
		{"k": "14"},
	}
	groups := GroupRecords(records, "k")
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "14" {
		t.Errorf("canonical key = %q, want \"14\"", groups[0].Key)
	}
}
