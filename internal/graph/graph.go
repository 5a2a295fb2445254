// Package graph is the hand-off boundary to the downstream graph-database
// loader. The merge engine produces clean records; this package delivers
// them. Schema mapping and graph drivers live on the other side of the
// boundary.
package graph

import (
	"context"
	"time"

	"github.com/david3xu/mining-reliability-db-sub000/internal/dataset"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// Loader consumes the merged records of one run.
type Loader interface {
	Load(ctx context.Context, records []record.Record, report *merge.Report) error
}

// Payload is the hand-off document a FileLoader writes. It carries enough
// run context for the downstream loader to trace records back to the merge
// that produced them.
type Payload struct {
	RunID       string          `json:"run_id"`
	CreatedAt   time.Time       `json:"created_at"`
	KeyField    string          `json:"key_field"`
	RecordCount int             `json:"record_count"`
	Records     []record.Record `json:"records"`
}

// FileLoader writes the hand-off payload as an indented JSON file at Path.
type FileLoader struct {
	Path string
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context, records []record.Record, report *merge.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := Payload{
		RecordCount: len(records),
		Records:     records,
	}
	if report != nil {
		p.RunID = report.RunID
		p.CreatedAt = report.CreatedAt
		p.KeyField = report.KeyField
	}
	return dataset.WriteJSON(l.Path, p)
}

// NopLoader discards everything. Used when no downstream hand-off is
// configured.
type NopLoader struct{}

// Load implements Loader.
func (NopLoader) Load(context.Context, []record.Record, *merge.Report) error {
	return nil
}
