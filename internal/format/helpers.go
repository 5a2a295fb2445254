package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FmtValue renders a merged field value for a table cell. Lists are joined
// with ", " and a missing value renders as "null".
func FmtValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}

// FmtConfidence renders a strategy confidence score with two decimals.
func FmtConfidence(c float64) string {
	return fmt.Sprintf("%.2f", c)
}

// FmtTime renders a run timestamp for table output.
func FmtTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
