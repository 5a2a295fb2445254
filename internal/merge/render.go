package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/david3xu/mining-reliability-db-sub000/internal/display"
	"github.com/david3xu/mining-reliability-db-sub000/internal/format"
)

// RenderReport produces a human-readable Markdown report from a merge run.
// The output leads with run totals, surfaces high-risk groups prominently,
// and then details every merged group with its full decision log.
func RenderReport(r *Report) string {
	if r == nil {
		return "# Merge Report\n\nNo report available.\n"
	}

	var b strings.Builder

	writeReportHeader(&b, r)
	writeReportSummary(&b, r)
	writeHighRiskGroups(&b, r)
	writeGroupDetails(&b, r)

	return b.String()
}

func writeReportHeader(b *strings.Builder, r *Report) {
	b.WriteString("# Merge Report\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("Field", "Value")
	tbl.Row("Run", r.RunID)
	tbl.Row("Created", r.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	tbl.Row("Key field", r.KeyField)
	tbl.Row("Input records", r.InputCount)
	tbl.Row("Output records", r.OutputCount)
	tbl.Row("Duplicates removed", r.DuplicatesRemoved())
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeReportSummary(b *strings.Builder, r *Report) {
	complexityCounts := make(map[string]int)
	riskCounts := make(map[string]int)
	for _, g := range r.Groups {
		if !g.WasMerged {
			continue
		}
		complexityCounts[string(g.Complexity)]++
		riskCounts[string(g.Risk)]++
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- **%d** %s, **%d** merged",
		r.GroupCount, pluralize(r.GroupCount, "group", "groups"), r.MergedGroups))
	if r.KeylessCount > 0 {
		b.WriteString(fmt.Sprintf(", %d keyless", r.KeylessCount))
	}
	b.WriteString("\n")

	if r.MergedGroups > 0 {
		b.WriteString("- **Complexity:** " + formatDistribution(complexityCounts, display.Complexity) + "\n")
		b.WriteString("- **Risk:** " + formatDistribution(riskCounts, display.Risk) + "\n")
	}
	b.WriteString("\n")
}

func writeHighRiskGroups(b *strings.Builder, r *Report) {
	high := r.HighRiskGroups()
	if len(high) == 0 {
		return
	}

	b.WriteString("## High-Risk Groups\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("Key", "Records", "Warnings")
	tbl.Columns(
		format.ColumnConfig{Number: 3, MaxWidth: 80},
	)
	for _, g := range high {
		tbl.Row(
			display.GroupKey(g.Key, g.Keyless),
			g.Size,
			format.Truncate(strings.Join(g.Warnings, "; "), 80),
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeGroupDetails(b *strings.Builder, r *Report) {
	var singletons int
	b.WriteString("## Merged Groups\n\n")

	rendered := false
	for _, g := range r.Groups {
		if !g.WasMerged {
			singletons++
			continue
		}
		rendered = true

		b.WriteString(fmt.Sprintf("### %s (%d %s)\n\n",
			display.GroupKey(g.Key, g.Keyless), g.Size, pluralize(g.Size, "record", "records")))

		tbl := format.NewTable(format.Markdown)
		tbl.Header("Field", "Value")
		tbl.Row("Complexity", display.Complexity(string(g.Complexity)))
		tbl.Row("Risk", display.Risk(string(g.Risk)))
		if len(g.DifferingFields) > 0 {
			tbl.Row("Differing fields", strings.Join(g.DifferingFields, ", "))
		}
		b.WriteString(tbl.String())
		b.WriteString("\n\n")

		if len(g.Decisions) > 0 {
			dt := format.NewTable(format.Markdown)
			dt.Header("Field", "Kind", "Strategy", "Merged Value", "Confidence", "Notes")
			dt.Columns(
				format.ColumnConfig{Number: 4, MaxWidth: 40},
				format.ColumnConfig{Number: 6, MaxWidth: 60},
			)
			for _, d := range g.Decisions {
				dt.Row(
					d.Field,
					display.Kind(string(d.Kind)),
					display.Strategy(string(d.Strategy)),
					format.Truncate(format.FmtValue(d.MergedValue), 40),
					format.FmtConfidence(d.Confidence),
					format.Truncate(strings.Join(d.Notes, "; "), 60),
				)
			}
			b.WriteString(dt.String())
			b.WriteString("\n\n")
		}

		if len(g.Warnings) > 0 {
			b.WriteString("**Warnings:** " + strings.Join(g.Warnings, "; ") + "\n\n")
		}

		b.WriteString("---\n\n")
	}

	if !rendered {
		b.WriteString("No duplicate groups found; all records passed through unchanged.\n\n")
	}
	if singletons > 0 {
		b.WriteString(fmt.Sprintf("%d %s passed through without merging.\n",
			singletons, pluralize(singletons, "singleton", "singletons")))
	}
}

// --- helpers ---

func formatDistribution(counts map[string]int, label func(string) string) string {
	type kv struct {
		Key   string
		Count int
	}
	sorted := make([]kv, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Key < sorted[j].Key
	})

	parts := make([]string, len(sorted))
	for i, item := range sorted {
		parts[i] = fmt.Sprintf("%s (%d)", label(item.Key), item.Count)
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
