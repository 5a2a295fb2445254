// Package fieldkind classifies record field names into semantic kinds.
// Classification is name-based only: an ordered list of keyword rules is
// tested against the lower-cased field name and the first rule with a
// matching keyword wins. Rule order therefore encodes priority and is part
// of the engine's public configuration, not an implementation detail:
// "Completion Date" matches both the date and status keyword sets, and only
// the fixed ordering makes the outcome (date) dependable.
package fieldkind

import (
	"fmt"
	"strings"
)

// Kind is the semantic category of a field, derived from its name.
type Kind string

const (
	Identifier Kind = "identifier"
	Date       Kind = "date"
	Status     Kind = "status"
	List       Kind = "list"
	Comment    Kind = "comment"
	Numeric    Kind = "numeric"
	Boolean    Kind = "boolean"
	Other      Kind = "other"
)

// Kinds lists every valid kind, in default rule priority order with the
// fallback last.
func Kinds() []Kind {
	return []Kind{Identifier, Date, Status, List, Comment, Numeric, Boolean, Other}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case Identifier, Date, Status, List, Comment, Numeric, Boolean, Other:
		return true
	}
	return false
}

// Rule maps a set of name keywords to a kind. A field name matches the rule
// if its lower-cased form contains any keyword as a substring.
type Rule struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultRules returns the built-in rule table for action-request datasets.
// Priority order: identifier, date, status, list, comment, numeric, boolean.
// Date precedes status so "Completion Date" and "Due Date Extension" land on
// date handling rather than the status ranking.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: Identifier, Keywords: []string{"id", "number", "key", "identifier", "code", "ref"}},
		{Kind: Date, Keywords: []string{"date", "time", "due", "completion", "verification"}},
		{Kind: Status, Keywords: []string{"stage", "complete", "status", "satisfactory", "effective"}},
		{Kind: List, Keywords: []string{"plan", "cause", "action", "asset", "item"}},
		{Kind: Comment, Keywords: []string{"comment", "description", "happened", "requirement"}},
		{Kind: Numeric, Keywords: []string{"amount", "days", "count", "quantity", "duration"}},
		{Kind: Boolean, Keywords: []string{"y/n", "yes/no", "flag", "recurring", "confirmed"}},
	}
}

// Classifier resolves field names to kinds using an ordered rule table.
// Safe for concurrent use; the rule table is read-only after construction.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from an ordered rule table. Rules with
// unknown kinds or no keywords are rejected so a typo in configuration
// surfaces at load time rather than as silent "other" classifications.
func NewClassifier(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("fieldkind: rule %d: unknown kind %q", i, r.Kind)
		}
		if r.Kind == Other {
			return nil, fmt.Errorf("fieldkind: rule %d: %q is the implicit fallback and cannot carry keywords", i, Other)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("fieldkind: rule %d (%s): no keywords", i, r.Kind)
		}
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		cp[i] = Rule{Kind: r.Kind, Keywords: kw}
	}
	return &Classifier{rules: cp}, nil
}

// Classify returns the kind of a field name. Total: names matching no rule
// classify as Other.
func (c *Classifier) Classify(fieldName string) Kind {
	name := strings.ToLower(fieldName)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(name, kw) {
				return r.Kind
			}
		}
	}
	return Other
}

// Rules returns a copy of the active rule table, in priority order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		kw := make([]string, len(r.Keywords))
		copy(kw, r.Keywords)
		out[i] = Rule{Kind: r.Kind, Keywords: kw}
	}
	return out
}
