// Package merge implements the record merge and deduplication engine: it
// groups records by a configured primary-key field, resolves conflicting
// field values through kind-classified strategies, and emits merged records
// with a full audit trail plus a run report.
//
// The engine is a single-pass, in-memory batch computation. Groups are
// independent units of work, so merging may fan out across workers, but
// output order always equals first-seen group order and a pinned Clock
// makes whole runs reproducible byte for byte.
package merge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/logging"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// Engine merges datasets according to one fixed configuration. Safe for
// concurrent use; all configuration is read-only after New.
type Engine struct {
	cfg        Config
	classifier *fieldkind.Classifier
	registry   *Registry
	log        *slog.Logger
}

// New builds an engine, filling config defaults and validating the
// classifier rules and strategy overrides up front.
func New(cfg Config) (*Engine, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	classifier, err := fieldkind.NewClassifier(cfg.ClassifierRules)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	registry, err := NewRegistry(cfg.StatusRanking, cfg.Overrides)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New("merge")
	}
	return &Engine{cfg: cfg, classifier: classifier, registry: registry, log: log}, nil
}

// Outcome is a successful run: the merged records in first-seen group
// order, each carrying its reserved metadata fields, and the audit report.
type Outcome struct {
	Records []record.Record
	Report  *Report
}

// groupResult pairs one group's merge output with its metadata (nil for
// singletons).
type groupResult struct {
	rec  record.Record
	meta *Metadata
}

// Merge runs the full batch: validate, group, merge, assess, validate
// again, report. It either returns a complete outcome or an error naming
// the violated invariant, never a partial result.
func (e *Engine) Merge(ctx context.Context, records []record.Record) (*Outcome, error) {
	if err := preValidate(records, e.cfg.KeyField); err != nil {
		return nil, err
	}

	input := e.ingest(records)
	groups := GroupRecords(input, e.cfg.KeyField)

	results := make([]groupResult, len(groups))
	if e.cfg.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.cfg.Workers)
		for i, grp := range groups {
			i, grp := i, grp
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, meta := mergeGroup(grp, e.classifier, e.registry)
				results[i] = groupResult{rec: rec, meta: meta}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("merge: canceled: %w", err)
		}
	} else {
		for i, grp := range groups {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("merge: canceled: %w", err)
			}
			rec, meta := mergeGroup(grp, e.classifier, e.registry)
			results[i] = groupResult{rec: rec, meta: meta}
		}
	}

	// One timestamp for the whole run so group order and worker count
	// never show up in the output.
	mergedAt := e.cfg.Clock().UTC()

	outputs := make([]record.Record, len(results))
	metas := make([]*Metadata, len(results))
	for i, res := range results {
		if res.meta != nil {
			res.meta.MergedAt = mergedAt
			a := assess(res.meta.Decisions, e.cfg.ComplexityLow, e.cfg.ComplexityMedium)
			res.meta.Complexity = a.Complexity
			res.meta.Validation = ValidationSummary{Integrity: "ok", Risk: a.Risk, Warnings: a.Warnings}
		}
		outputs[i] = res.rec
		metas[i] = res.meta
	}

	if err := postValidate(groups, outputs, metas); err != nil {
		return nil, err
	}

	for i, meta := range metas {
		if meta == nil {
			outputs[i].Set(record.FieldWasMerged, false)
			continue
		}
		outputs[i].Set(record.FieldWasMerged, true)
		outputs[i].Set(record.FieldMergeMetadata, meta)
	}

	report := e.buildReport(groups, metas, mergedAt, len(input), len(outputs))
	e.log.Info("merge complete",
		"run_id", report.RunID,
		"input_records", report.InputCount,
		"output_records", report.OutputCount,
		"groups", report.GroupCount,
		"merged_groups", report.MergedGroups,
		"keyless", report.KeylessCount,
		"high_risk", len(report.HighRiskGroups()),
	)
	return &Outcome{Records: outputs, Report: report}, nil
}

// ingest deep-copies and normalizes the caller's records and strips the
// engine-owned reserved fields, so re-merging previously merged output is a
// clean no-op instead of nesting metadata inside metadata.
func (e *Engine) ingest(records []record.Record) []record.Record {
	out := make([]record.Record, len(records))
	stripped := 0
	for i, r := range records {
		c := record.NormalizeRecord(r.Clone())
		for _, name := range []string{record.FieldWasMerged, record.FieldMergeMetadata} {
			if c.Has(name) {
				delete(c, name)
				stripped++
			}
		}
		out[i] = c
	}
	if stripped > 0 {
		e.log.Debug("stripped reserved metadata fields from input", "fields", stripped)
	}
	return out
}

func (e *Engine) buildReport(groups []Group, metas []*Metadata, createdAt time.Time, inputCount, outputCount int) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		CreatedAt:   createdAt,
		KeyField:    e.cfg.KeyField,
		InputCount:  inputCount,
		OutputCount: outputCount,
		GroupCount:  len(groups),
		Groups:      make([]GroupReport, len(groups)),
	}
	for i, g := range groups {
		gr := GroupReport{
			Key:        g.Key,
			Keyless:    g.Keyless,
			Size:       len(g.Records),
			Complexity: ComplexityLow,
			Risk:       RiskLow,
		}
		if g.Keyless {
			r.KeylessCount++
		}
		if meta := metas[i]; meta != nil {
			r.MergedGroups++
			gr.WasMerged = true
			gr.Complexity = meta.Complexity
			gr.Risk = meta.Validation.Risk
			gr.Warnings = meta.Validation.Warnings
			gr.DifferingFields = meta.DifferingFields
			gr.Decisions = meta.Decisions
		}
		r.Groups[i] = gr
	}
	return r
}
