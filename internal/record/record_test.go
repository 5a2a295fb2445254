package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHas_DistinguishesAbsentFromNull(t *testing.T) {
	r := Record{"present_null": nil, "present_empty": ""}

	if !r.Has("present_null") {
		t.Error("Has(present_null) = false, want true")
	}
	if !r.Has("present_empty") {
		t.Error("Has(present_empty) = false, want true")
	}
	if r.Has("absent") {
		t.Error("Has(absent) = true, want false")
	}

	v, ok := r.Get("present_null")
	if !ok || v != nil {
		t.Errorf("Get(present_null) = (%v, %v), want (nil, true)", v, ok)
	}
	v, ok = r.Get("present_empty")
	if !ok || v != "" {
		t.Errorf("Get(present_empty) = (%v, %v), want (\"\", true)", v, ok)
	}
	if _, ok := r.Get("absent"); ok {
		t.Error("Get(absent) reported present")
	}
}

func TestClone_DoesNotAliasLists(t *testing.T) {
	orig := Record{"actions": []string{"replace seal", "inspect pump"}}
	cl := orig.Clone()

	cl["actions"].([]string)[0] = "mutated"

	if orig["actions"].([]string)[0] != "replace seal" {
		t.Error("Clone aliased the original list")
	}
}

func TestFieldNames_Sorted(t *testing.T) {
	r := Record{"b": 1.0, "a": "x", "c": nil}
	got := r.FieldNames()
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldNames mismatch (-want +got):\n%s", diff)
	}
}

func TestUnionFieldNames(t *testing.T) {
	records := []Record{
		{"b": 1.0, "a": "x"},
		{"c": true, "a": "y"},
		nil,
		{"d": nil},
	}
	got := UnionFieldNames(records)
	want := []string{"a", "b", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnionFieldNames mismatch (-want +got):\n%s", diff)
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved(FieldWasMerged) || !IsReserved(FieldMergeMetadata) {
		t.Error("reserved names not recognized")
	}
	if IsReserved("Action Request Number") {
		t.Error("ordinary field flagged reserved")
	}
}
