// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, markdown reports, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

// --- Merge Strategies ---

var strategies = map[string]string{
	"primary_key":         "Primary Key",
	"merge_lists":         "Merge Lists",
	"latest_date":         "Latest Date",
	"concatenate_strings": "Concatenate Text",
	"max_numeric":         "Maximum Value",
	"prioritize_yes":      "Prioritize Yes",
	"prioritize_status":   "Status Ranking",
	"first_non_null":      "First Non-Null",
}

// Strategy returns the human-readable name for a merge strategy code.
// Unknown codes are returned as-is.
func Strategy(code string) string {
	if name, ok := strategies[code]; ok {
		return name
	}
	return code
}

// StrategyWithCode returns "Latest Date (latest_date)" format for
// dual-audience contexts.
func StrategyWithCode(code string) string {
	if name, ok := strategies[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Field Kinds ---

var kinds = map[string]string{
	"identifier": "Identifier",
	"date":       "Date",
	"status":     "Status",
	"list":       "List",
	"comment":    "Comment",
	"numeric":    "Numeric",
	"boolean":    "Boolean",
	"other":      "Other",
}

// Kind returns the human-readable name for a field kind code.
// "identifier" -> "Identifier". Unknown codes are returned as-is.
func Kind(code string) string {
	if name, ok := kinds[code]; ok {
		return name
	}
	return code
}

// --- Risk and Complexity ---

var risks = map[string]string{
	"low":    "Low",
	"medium": "Medium",
	"high":   "HIGH",
}

// Risk returns the display form of a risk level. High risk is upper-cased
// so it stands out in group tables.
func Risk(code string) string {
	if name, ok := risks[code]; ok {
		return name
	}
	return code
}

var complexities = map[string]string{
	"low":    "Low",
	"medium": "Medium",
	"high":   "High",
}

// Complexity returns the display form of a merge complexity level.
func Complexity(code string) string {
	if name, ok := complexities[code]; ok {
		return name
	}
	return code
}

// --- Groups ---

// GroupKey formats a group key for display. Keyless groups carry no key
// value, so they render with a fixed marker instead of an empty cell.
func GroupKey(key string, keyless bool) string {
	if keyless {
		return "(keyless)"
	}
	return key
}
