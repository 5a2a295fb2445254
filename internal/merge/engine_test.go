package merge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

func testEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.KeyField == "" {
		cfg.KeyField = "Action Request Number"
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC) }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func mustMerge(t *testing.T, e *Engine, records []record.Record) *Outcome {
	t.Helper()
	out, err := e.Merge(context.Background(), records)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return out
}

func TestMerge_EndToEnd(t *testing.T) {
	e := testEngine(t, Config{})
	records := []record.Record{
		{
			"Action Request Number": "2023-001",
			"Root Cause":            []string{"Bearing wear"},
			"Action Plan":           "Replace filter",
		},
		{
			"Action Request Number": "2023-001",
			"Root Cause":            []string{"Bearing wear", "Poor lubrication"},
			"Action Plan":           "Replace filter",
		},
	}

	out := mustMerge(t, e, records)

	if len(out.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(out.Records))
	}
	merged := out.Records[0]

	wantCause := []string{"Bearing wear", "Poor lubrication"}
	if diff := cmp.Diff(wantCause, merged["Root Cause"]); diff != "" {
		t.Errorf("Root Cause mismatch (-want +got):\n%s", diff)
	}
	if merged["Action Plan"] != "Replace filter" {
		t.Errorf("Action Plan = %v, want unchanged copy", merged["Action Plan"])
	}
	if merged[record.FieldWasMerged] != true {
		t.Errorf("%s = %v, want true", record.FieldWasMerged, merged[record.FieldWasMerged])
	}

	meta, ok := merged[record.FieldMergeMetadata].(*Metadata)
	if !ok {
		t.Fatalf("%s missing or wrong type: %T", record.FieldMergeMetadata, merged[record.FieldMergeMetadata])
	}
	if meta.OriginalRecordCount != 2 {
		t.Errorf("OriginalRecordCount = %d, want 2", meta.OriginalRecordCount)
	}
	if meta.Complexity != ComplexityLow {
		t.Errorf("Complexity = %s, want %s", meta.Complexity, ComplexityLow)
	}
	if len(meta.Decisions) != 1 || meta.Decisions[0].Field != "Root Cause" {
		t.Fatalf("Decisions = %+v, want exactly one for Root Cause", meta.Decisions)
	}
	if meta.Decisions[0].Strategy != MergeLists {
		t.Errorf("strategy = %s, want %s", meta.Decisions[0].Strategy, MergeLists)
	}

	if out.Report.InputCount != 2 || out.Report.OutputCount != 1 || out.Report.MergedGroups != 1 {
		t.Errorf("report counts = %d/%d/%d, want 2/1/1",
			out.Report.InputCount, out.Report.OutputCount, out.Report.MergedGroups)
	}
}

func TestMerge_ConflictingIdentifier(t *testing.T) {
	e := testEngine(t, Config{})
	records := []record.Record{
		{"Action Request Number": "2023-001", "Asset Number": "PUMP-1"},
		{"Action Request Number": "2023-001", "Asset Number": "PUMP-2"},
	}

	out := mustMerge(t, e, records)

	if len(out.Records) != 1 {
		t.Fatalf("got %d records, want 1 (merge must still complete)", len(out.Records))
	}
	if out.Records[0]["Asset Number"] != "PUMP-1" {
		t.Errorf("Asset Number = %v, want first non-null PUMP-1", out.Records[0]["Asset Number"])
	}

	g := out.Report.Groups[0]
	if g.Risk != RiskHigh {
		t.Errorf("risk = %s, want %s", g.Risk, RiskHigh)
	}
	if len(g.Warnings) == 0 {
		t.Error("want a conflicting-identifier warning on the group")
	}
	if len(out.Report.HighRiskGroups()) != 1 {
		t.Errorf("HighRiskGroups = %d, want 1", len(out.Report.HighRiskGroups()))
	}
}

func TestMerge_CountInvariant(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{
		{"k": "a"}, {"k": "b"}, {"k": "a"}, {"k": "a"},
		{"Title": "keyless"},
		{"k": "c"}, {"k": "b"},
	}
	// Groups: a(3), b(2), keyless(1), c(1) -> 4 outputs; dropped = 2+1.
	out := mustMerge(t, e, records)

	if want := len(records) - 3; len(out.Records) != want {
		t.Errorf("output count = %d, want %d", len(out.Records), want)
	}
	if out.Report.KeylessCount != 1 {
		t.Errorf("KeylessCount = %d, want 1", out.Report.KeylessCount)
	}
	if out.Report.DuplicatesRemoved() != 3 {
		t.Errorf("DuplicatesRemoved = %d, want 3", out.Report.DuplicatesRemoved())
	}
}

func TestMerge_SingletonPassthrough(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{{"k": "a", "Title": "only one", "Count": 5}}

	out := mustMerge(t, e, records)

	r := out.Records[0]
	if r[record.FieldWasMerged] != false {
		t.Errorf("%s = %v, want false", record.FieldWasMerged, r[record.FieldWasMerged])
	}
	if r.Has(record.FieldMergeMetadata) {
		t.Error("singleton must not carry merge metadata")
	}
	if r["Title"] != "only one" || r["Count"] != float64(5) {
		t.Errorf("singleton fields mutated: %v", r)
	}
}

func TestMerge_Idempotence(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{
		{"k": "a", "Comment": "one"},
		{"k": "a", "Comment": "two"},
		{"k": "b", "Comment": "three"},
	}

	first := mustMerge(t, e, records)
	second := mustMerge(t, e, first.Records)

	if len(second.Records) != len(first.Records) {
		t.Fatalf("second run count = %d, want %d", len(second.Records), len(first.Records))
	}
	if second.Report.MergedGroups != 0 {
		t.Errorf("second run MergedGroups = %d, want 0", second.Report.MergedGroups)
	}
	for i, r := range second.Records {
		if r[record.FieldWasMerged] != false {
			t.Errorf("record %d: %s = %v, want false", i, record.FieldWasMerged, r[record.FieldWasMerged])
		}
		for field, v := range first.Records[i] {
			if record.IsReserved(field) {
				continue
			}
			if !record.Equal(r[field], v) {
				t.Errorf("record %d field %q changed on re-merge: %v -> %v", i, field, v, r[field])
			}
		}
	}
}

func TestMerge_Determinism(t *testing.T) {
	cfg := Config{KeyField: "k"}
	records := func() []record.Record {
		return []record.Record{
			{"k": "a", "Status": "Open", "Comment": "x", "Days Open": 5},
			{"k": "a", "Status": "Closed", "Comment": "y", "Days Open": 9},
			{"k": "b", "Root Cause": []string{"wear"}},
			{"k": "b", "Root Cause": []string{"heat", "wear"}},
		}
	}

	a := mustMerge(t, testEngine(t, cfg), records())
	b := mustMerge(t, testEngine(t, cfg), records())

	aj, err := json.Marshal(a.Records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	bj, err := json.Marshal(b.Records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(aj) != string(bj) {
		t.Errorf("two runs differ:\n%s\n%s", aj, bj)
	}

	ag, _ := json.Marshal(a.Report.Groups)
	bg, _ := json.Marshal(b.Report.Groups)
	if string(ag) != string(bg) {
		t.Errorf("decision logs differ:\n%s\n%s", ag, bg)
	}
}

func TestMerge_ParallelMatchesSerial(t *testing.T) {
	records := func() []record.Record {
		var out []record.Record
		keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		for i, k := range keys {
			out = append(out,
				record.Record{"k": k, "Status": "Open", "Days Open": i},
				record.Record{"k": k, "Status": "Closed", "Days Open": i + 10},
			)
		}
		return out
	}

	serial := mustMerge(t, testEngine(t, Config{KeyField: "k", Workers: 1}), records())
	parallel := mustMerge(t, testEngine(t, Config{KeyField: "k", Workers: 4}), records())

	sj, _ := json.Marshal(serial.Records)
	pj, _ := json.Marshal(parallel.Records)
	if string(sj) != string(pj) {
		t.Errorf("parallel output differs from serial:\n%s\n%s", sj, pj)
	}
}

func TestMerge_ContextCanceled(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k", Workers: 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Merge(ctx, []record.Record{{"k": "a"}, {"k": "a"}})
	if err == nil {
		t.Fatal("want error from canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled in chain", err)
	}
}

func TestMerge_StructuralErrorAbortsBatch(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	_, err := e.Merge(context.Background(), []record.Record{{"Title": "no key"}})
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StructuralError", err)
	}
}

func TestMerge_FieldOverride(t *testing.T) {
	e := testEngine(t, Config{
		KeyField:  "k",
		Overrides: map[string]Name{"Days Open": FirstNonNull},
	})
	records := []record.Record{
		{"k": "a", "Days Open": 5},
		{"k": "a", "Days Open": 9},
	}

	out := mustMerge(t, e, records)

	if got := out.Records[0]["Days Open"]; got != float64(5) {
		t.Errorf("Days Open = %v, want 5 (override to first_non_null, not max)", got)
	}
	d := out.Report.Groups[0].Decisions[0]
	if d.Strategy != FirstNonNull {
		t.Errorf("strategy = %s, want %s", d.Strategy, FirstNonNull)
	}
}

func TestMerge_NormalizationUnifiesNumericTypes(t *testing.T) {
	// int 5 and float64 5 are the same value after ingest; no decision.
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{
		{"k": "a", "Days Open": 5},
		{"k": "a", "Days Open": 5.0},
	}

	out := mustMerge(t, e, records)

	if len(out.Report.Groups[0].Decisions) != 0 {
		t.Errorf("decisions = %+v, want none for equal values", out.Report.Groups[0].Decisions)
	}
	if out.Records[0]["Days Open"] != float64(5) {
		t.Errorf("Days Open = %v, want 5", out.Records[0]["Days Open"])
	}
}

func TestMerge_InputNotMutated(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{
		{"k": "a", "Root Cause": []string{"wear"}},
		{"k": "a", "Root Cause": []string{"heat"}},
	}

	mustMerge(t, e, records)

	if records[0].Has(record.FieldWasMerged) {
		t.Error("engine mutated caller's record")
	}
	if diff := cmp.Diff([]string{"wear"}, records[0]["Root Cause"]); diff != "" {
		t.Errorf("caller's list mutated (-want +got):\n%s", diff)
	}
}

func TestMerge_StripsStaleReservedFields(t *testing.T) {
	e := testEngine(t, Config{KeyField: "k"})
	records := []record.Record{
		{"k": "a", "Title": "x", record.FieldWasMerged: true, record.FieldMergeMetadata: map[string]any{"stale": true}},
	}

	out := mustMerge(t, e, records)

	r := out.Records[0]
	if r[record.FieldWasMerged] != false {
		t.Errorf("%s = %v, want false after strip", record.FieldWasMerged, r[record.FieldWasMerged])
	}
	if r.Has(record.FieldMergeMetadata) {
		t.Error("stale metadata survived ingest")
	}
}

func TestNew_ConfigValidation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("missing key field accepted")
	}
	if _, err := New(Config{KeyField: "k", ComplexityLow: 20, ComplexityMedium: 10}); err == nil {
		t.Error("inverted complexity thresholds accepted")
	}
	if _, err := New(Config{KeyField: "k", Overrides: map[string]Name{"f": "no_such"}}); err == nil {
		t.Error("unknown override strategy accepted")
	}
}
