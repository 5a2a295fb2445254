package merge

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
)

// Default complexity thresholds: differing-field counts at or below Low are
// low complexity, at or below Medium are medium, above are high.
const (
	DefaultComplexityLow    = 10
	DefaultComplexityMedium = 20
)

// DefaultStatusRanking is the workflow progression for action-request
// datasets, most advanced state first. prioritize_status picks the value
// ranked earliest here; unrecognized statuses rank below all of these.
func DefaultStatusRanking() []string {
	return []string{
		"Closed",
		"Verified",
		"Completed",
		"Implemented",
		"In Progress",
		"Assigned",
		"Open",
		"Draft",
	}
}

// Config carries everything the engine needs. The zero value is not usable;
// KeyField is mandatory and the rest fill from defaults in New.
type Config struct {
	// KeyField names the primary-key field used for duplicate grouping,
	// e.g. "Action Request Number".
	KeyField string

	// ClassifierRules overrides the field-kind rule table. Nil means
	// fieldkind.DefaultRules. Order is priority.
	ClassifierRules []fieldkind.Rule

	// StatusRanking orders known status strings most-advanced first.
	// Nil means DefaultStatusRanking.
	StatusRanking []string

	// Overrides maps a field name to a strategy, bypassing kind dispatch
	// for datasets where a name-based kind picks the wrong strategy.
	Overrides map[string]Name

	// ComplexityLow and ComplexityMedium are the differing-field-count
	// thresholds. Zero means the defaults (10 and 20).
	ComplexityLow    int
	ComplexityMedium int

	// Workers bounds concurrent group merges. 0 or 1 is serial. Output
	// order is first-seen group order regardless.
	Workers int

	// Clock stamps merge metadata and reports. Nil means time.Now. Pin it
	// for reproducible output; merged values and decisions never depend
	// on it.
	Clock func() time.Time

	// Logger receives engine diagnostics. Nil means the process default
	// with component "merge".
	Logger *slog.Logger
}

func (c *Config) normalize() {
	if c.ComplexityLow == 0 {
		c.ComplexityLow = DefaultComplexityLow
	}
	if c.ComplexityMedium == 0 {
		c.ComplexityMedium = DefaultComplexityMedium
	}
	if c.StatusRanking == nil {
		c.StatusRanking = DefaultStatusRanking()
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}

func (c *Config) validate() error {
	if c.KeyField == "" {
		return fmt.Errorf("merge: config: key field is required")
	}
	if c.ComplexityLow < 1 || c.ComplexityMedium <= c.ComplexityLow {
		return fmt.Errorf("merge: config: complexity thresholds must satisfy 0 < low < medium (got %d, %d)",
			c.ComplexityLow, c.ComplexityMedium)
	}
	return nil
}
