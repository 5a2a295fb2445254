package merge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

// primaryKey returns the first non-null value. Identity is never blended;
// when the group holds two distinct identifiers the assessor raises the
// conflict, this strategy still answers deterministically.
func primaryKey(values []any) Result {
	for _, v := range values {
		if v != nil {
			return Result{Value: v, Confidence: confPrimaryKey}
		}
	}
	return Result{Value: nil, Confidence: confNoValue, Notes: []string{"no non-null value"}}
}

// mergeLists flattens every input into one list, scalars becoming
// single-element lists, and drops exact duplicates keeping first occurrence
// order. Equality is exact string equality, deliberately conservative: no
// trimming, no case folding.
func mergeLists(values []any) Result {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(e string) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	for _, v := range values {
		switch x := v.(type) {
		case nil:
		case []string:
			for _, e := range x {
				add(e)
			}
		default:
			if record.IsNullish(x) {
				continue
			}
			add(record.CanonicalString(x))
		}
	}
	return Result{Value: out, Confidence: confMergeLists}
}

// concatenateStrings joins distinct non-empty values with " | ", first-seen
// order, exact-equality dedup. Null and empty inputs are excluded up front,
// never turned into empty segments.
func concatenateStrings(values []any) Result {
	var parts []string
	seen := make(map[string]struct{})
	for _, v := range values {
		if record.IsNullish(v) {
			continue
		}
		var s string
		if list, ok := v.([]string); ok {
			s = strings.Join(list, ", ")
		} else {
			s = record.CanonicalString(v)
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return Result{Value: nil, Confidence: confNoValue, Notes: []string{"no non-empty value"}}
	}
	return Result{Value: strings.Join(parts, " | "), Confidence: confConcatenateStrings}
}

// dateLayouts are tried in order; the first that parses wins. Day-first
// slash dates match the source system's export format.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
	"02-Jan-2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// latestDate returns the chronologically greatest parseable value, in its
// original representation. Unparseable values are excluded and noted, not
// fatal. Nothing parseable yields null with zero confidence.
func latestDate(values []any) Result {
	var notes []string
	bestIdx := -1
	var bestT time.Time
	for i, v := range values {
		if record.IsNullish(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			notes = append(notes, fmt.Sprintf("excluded unparseable date %v", v))
			continue
		}
		t, ok := parseDate(s)
		if !ok {
			notes = append(notes, fmt.Sprintf("excluded unparseable date %q", s))
			continue
		}
		if bestIdx == -1 || t.After(bestT) {
			bestIdx, bestT = i, t
		}
	}
	if bestIdx == -1 {
		return Result{Value: nil, Confidence: confNoValue, Notes: append(notes, "no parseable date")}
	}
	return Result{Value: values[bestIdx], Confidence: confLatestDate, Notes: notes}
}

// prioritizeStatus picks the most advanced status per the configured
// ranking (index 0 most advanced). Matching is case-insensitive; the
// original casing is returned. Unrecognized statuses rank below all known
// ones; ties keep the first-seen value.
func prioritizeStatus(ranking []string) Func {
	rank := make(map[string]int, len(ranking))
	for i, s := range ranking {
		rank[strings.ToLower(s)] = i
	}
	unranked := len(ranking)
	return func(values []any) Result {
		var notes []string
		bestIdx := -1
		bestRank := unranked + 1
		for i, v := range values {
			if record.IsNullish(v) {
				continue
			}
			r, ok := rank[strings.ToLower(record.CanonicalString(v))]
			if !ok {
				r = unranked
			}
			if bestIdx == -1 || r < bestRank {
				bestIdx, bestRank = i, r
			}
		}
		if bestIdx == -1 {
			return Result{Value: nil, Confidence: confNoValue, Notes: []string{"no status value"}}
		}
		if bestRank == unranked {
			notes = append(notes, fmt.Sprintf("status %q not in ranking", record.CanonicalString(values[bestIdx])))
		}
		return Result{Value: values[bestIdx], Confidence: confPrioritizeStatus, Notes: notes}
	}
}

// maxNumeric returns the greatest parseable number, in its original
// representation. Unparseable values are excluded and noted. Nothing
// parseable yields null with zero confidence.
func maxNumeric(values []any) Result {
	var notes []string
	bestIdx := -1
	var bestN float64
	for i, v := range values {
		if record.IsNullish(v) {
			continue
		}
		var n float64
		switch x := v.(type) {
		case float64:
			n = x
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				notes = append(notes, fmt.Sprintf("excluded non-numeric value %q", x))
				continue
			}
			n = parsed
		default:
			notes = append(notes, fmt.Sprintf("excluded non-numeric value %v", x))
			continue
		}
		if bestIdx == -1 || n > bestN {
			bestIdx, bestN = i, n
		}
	}
	if bestIdx == -1 {
		return Result{Value: nil, Confidence: confNoValue, Notes: append(notes, "no numeric value")}
	}
	return Result{Value: values[bestIdx], Confidence: confMaxNumeric, Notes: notes}
}

// prioritizeYes returns the canonical "Yes" when any value matches yes/true
// case-insensitively, else the first non-null value.
func prioritizeYes(values []any) Result {
	for _, v := range values {
		if v == nil {
			continue
		}
		switch strings.ToLower(record.CanonicalString(v)) {
		case "yes", "true":
			return Result{Value: "Yes", Confidence: confPrioritizeYes}
		}
	}
	for _, v := range values {
		if v != nil {
			return Result{Value: v, Confidence: confPrioritizeYes}
		}
	}
	return Result{Value: nil, Confidence: confNoValue, Notes: []string{"no non-null value"}}
}

// firstNonNull is the fallback: the first value that is neither null nor an
// empty string. Lowest confidence of all strategies because it picks rather
// than resolves.
func firstNonNull(values []any) Result {
	for _, v := range values {
		if record.IsNullish(v) {
			continue
		}
		return Result{Value: v, Confidence: confFirstNonNull}
	}
	return Result{Value: nil, Confidence: confNoValue, Notes: []string{"no non-null value"}}
}
