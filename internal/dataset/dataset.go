// Package dataset reads and writes record datasets as JSON files. Two file
// shapes are accepted: a bare array of record objects, or an object wrapping
// the array with a dataset name. Values are normalized into the engine's
// value domain on load; explicit nulls survive the round trip, absent fields
// stay absent.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// Dataset is a named collection of records.
type Dataset struct {
	Name    string          `json:"name,omitempty"`
	Records []record.Record `json:"records"`
}

// Load reads a dataset file, accepting either a bare record array or a
// wrapped {"name": ..., "records": [...]} object, and normalizes every
// value.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dataset: %q is empty", path)
	}

	var ds Dataset
	if trimmed[0] == '[' {
		if err := json.Unmarshal(data, &ds.Records); err != nil {
			return nil, fmt.Errorf("dataset: unmarshal %q: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("dataset: unmarshal %q: %w", path, err)
		}
	}
	if ds.Name == "" {
		base := filepath.Base(path)
		ds.Name = base[:len(base)-len(filepath.Ext(base))]
	}

	for i, r := range ds.Records {
		ds.Records[i] = record.NormalizeRecord(r)
	}
	return &ds, nil
}

// Save writes the dataset in the wrapped shape, indented for review.
func Save(path string, ds *Dataset) error {
	return WriteJSON(path, ds)
}

// SaveRecords writes records as a bare array, the shape downstream loaders
// ingest.
func SaveRecords(path string, records []record.Record) error {
	return WriteJSON(path, records)
}

// WriteJSON marshals v indented and writes it, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: marshal %q: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: create dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("dataset: write %q: %w", path, err)
	}
	return nil
}
