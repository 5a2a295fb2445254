// Package store persists merge runs: the run report plus the scalar columns
// the review commands list and filter on. Implementations are SQLite (the
// default, pure Go driver) and in-memory (tests, callers that opt out of
// persistence).
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
)

// DefaultDBPath is the default relative path for the SQLite DB
// (per-workspace). Open() creates the parent dir (e.g. .mrdb).
const DefaultDBPath = ".mrdb/runs.db"

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("store: run not found")

// Run is one persisted merge run.
type Run struct {
	ID           string
	Dataset      string
	KeyField     string
	CreatedAt    time.Time
	InputCount   int
	OutputCount  int
	GroupCount   int
	MergedGroups int
	KeylessCount int
	HighRisk     int
	// Report is the full audit payload. Always set on Get; list queries
	// populate it too since reports are small relative to their datasets.
	Report *merge.Report
}

// NewRun builds the Run row for a finished report.
func NewRun(dataset string, report *merge.Report) *Run {
	return &Run{
		ID:           report.RunID,
		Dataset:      dataset,
		KeyField:     report.KeyField,
		CreatedAt:    report.CreatedAt,
		InputCount:   report.InputCount,
		OutputCount:  report.OutputCount,
		GroupCount:   report.GroupCount,
		MergedGroups: report.MergedGroups,
		KeylessCount: report.KeylessCount,
		HighRisk:     len(report.HighRiskGroups()),
		Report:       report,
	}
}

// Store is the persistence facade for merge runs. CLI and MCP layers use
// only this interface; implementation is SQLite or in-memory.
type Store interface {
	SaveRun(run *Run) error
	GetRun(id string) (*Run, error)
	// ListRuns returns runs newest first.
	ListRuns() ([]*Run, error)
	Close() error
}

// MemStore is the in-memory Store.
type MemStore struct {
	mu    sync.Mutex
	runs  map[string]*Run
	order []string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{runs: make(map[string]*Run)}
}

func (s *MemStore) SaveRun(run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return run, nil
}

func (s *MemStore) ListRuns() ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.runs[s.order[i]])
	}
	return out, nil
}

func (s *MemStore) Close() error { return nil }
