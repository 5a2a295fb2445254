// Package config loads the engine's YAML configuration file. Flags may
// override individual values in the CLI layer; everything here is explicit
// configuration threaded through constructors, never package-level state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/logging"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
	"github.com/david3xu/mining-reliability-db-sub000/internal/store"
)

// Complexity carries the differing-field-count thresholds.
type Complexity struct {
	LowMax    int `yaml:"low_max"`
	MediumMax int `yaml:"medium_max"`
}

// File is the mrdb.yaml shape.
type File struct {
	KeyField        string            `yaml:"key_field"`
	LogLevel        string            `yaml:"log_level"`
	LogFormat       string            `yaml:"log_format"`
	Workers         int               `yaml:"workers"`
	StorePath       string            `yaml:"store_path"`
	Complexity      Complexity        `yaml:"complexity"`
	StatusRanking   []string          `yaml:"status_ranking"`
	ClassifierRules []fieldkind.Rule  `yaml:"classifier_rules"`
	Overrides       map[string]string `yaml:"overrides"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		KeyField:   "Action Request Number",
		LogLevel:   "info",
		LogFormat:  "text",
		Workers:    1,
		StorePath:  store.DefaultDBPath,
		Complexity: Complexity{LowMax: merge.DefaultComplexityLow, MediumMax: merge.DefaultComplexityMedium},
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	return f, nil
}

// Validate rejects values the engine or CLI would later choke on.
func (f *File) Validate() error {
	if f.KeyField == "" {
		return fmt.Errorf("key_field is required")
	}
	if _, err := logging.ParseLevel(f.LogLevel); err != nil {
		return err
	}
	switch f.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", f.LogFormat)
	}
	if f.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", f.Workers)
	}
	return nil
}

// EngineConfig maps the file onto the engine's configuration.
func (f *File) EngineConfig() merge.Config {
	cfg := merge.Config{
		KeyField:         f.KeyField,
		ClassifierRules:  f.ClassifierRules,
		StatusRanking:    f.StatusRanking,
		ComplexityLow:    f.Complexity.LowMax,
		ComplexityMedium: f.Complexity.MediumMax,
		Workers:          f.Workers,
	}
	if len(f.Overrides) > 0 {
		cfg.Overrides = make(map[string]merge.Name, len(f.Overrides))
		for field, name := range f.Overrides {
			cfg.Overrides[field] = merge.Name(name)
		}
	}
	return cfg
}
