// Package wiring executes the full merge flow end to end: load the dataset,
// merge it, persist the run, and write the requested outputs. The CLI and
// the MCP server share this path so their behavior never drifts.
package wiring

import (
	"context"

	"github.com/david3xu/mining-reliability-db-sub000/internal/config"
	"github.com/david3xu/mining-reliability-db-sub000/internal/dataset"
	"github.com/david3xu/mining-reliability-db-sub000/internal/graph"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
	"github.com/david3xu/mining-reliability-db-sub000/internal/store"
)

// RunSpec describes one merge flow invocation. Optional fields left at
// their zero value skip that output.
type RunSpec struct {
	// Config supplies engine defaults. Required.
	Config *config.File
	// DatasetPath is the input dataset file. Required.
	DatasetPath string

	// KeyField and Workers override the config when set.
	KeyField string
	Workers  int

	// Store persists the run when non-nil.
	Store store.Store
	// OutputPath and ReportPath write merged records and the audit report.
	OutputPath string
	ReportPath string
	// Loader receives the merged records when non-nil.
	Loader graph.Loader
}

// RunResult is the completed flow: the loaded dataset's name and the merge
// outcome.
type RunResult struct {
	Dataset string
	Outcome *merge.Outcome
}

// Run executes the full merge flow: load, merge, persist, write outputs.
func Run(ctx context.Context, spec RunSpec) (*RunResult, error) {
	ds, err := dataset.Load(spec.DatasetPath)
	if err != nil {
		return nil, err
	}

	cfg := spec.Config.EngineConfig()
	if spec.KeyField != "" {
		cfg.KeyField = spec.KeyField
	}
	if spec.Workers > 0 {
		cfg.Workers = spec.Workers
	}

	engine, err := merge.New(cfg)
	if err != nil {
		return nil, err
	}
	outcome, err := engine.Merge(ctx, ds.Records)
	if err != nil {
		return nil, err
	}

	if spec.Store != nil {
		if err := spec.Store.SaveRun(store.NewRun(ds.Name, outcome.Report)); err != nil {
			return nil, err
		}
	}
	if spec.OutputPath != "" {
		if err := dataset.SaveRecords(spec.OutputPath, outcome.Records); err != nil {
			return nil, err
		}
	}
	if spec.ReportPath != "" {
		if err := dataset.WriteJSON(spec.ReportPath, outcome.Report); err != nil {
			return nil, err
		}
	}
	if spec.Loader != nil {
		if err := spec.Loader.Load(ctx, outcome.Records, outcome.Report); err != nil {
			return nil, err
		}
	}

	return &RunResult{Dataset: ds.Name, Outcome: outcome}, nil
}
