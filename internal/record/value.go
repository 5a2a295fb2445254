package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize canonicalizes a decoded value into the record value domain:
// nil, string, float64, bool, or []string. JSON decoding yields []any for
// arrays and float64 for numbers; YAML and hand-built fixtures yield ints
// and []any of mixed content. Anything else is rendered via fmt.Sprint as a
// last resort so no value is dropped.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, float64:
		return x
	case []string:
		return x
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if e == nil {
				continue
			}
			out = append(out, CanonicalString(Normalize(e)))
		}
		return out
	default:
		return fmt.Sprint(x)
	}
}

// NormalizeRecord normalizes every value in place and returns the record.
func NormalizeRecord(r Record) Record {
	for k, v := range r {
		r[k] = Normalize(v)
	}
	return r
}

// Equal reports exact equality of two normalized values. Lists compare
// element-wise and order-sensitively. Strings compare case-sensitively with
// no trimming; cleaning inputs is the loader's job, not the comparator's.
func Equal(a, b any) bool {
	la, aIsList := a.([]string)
	lb, bIsList := b.([]string)
	if aIsList || bIsList {
		if !aIsList || !bIsList || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}

// IsNullish reports whether a value is null or an empty string. Absence is
// not representable here; callers check Record.Has first.
func IsNullish(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// CanonicalString renders a normalized value as a stable string, used for
// group keys and for flattening scalars into lists. Numbers render without
// a trailing ".0"; lists join on "\x1f" so distinct lists never collide.
func CanonicalString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, "\x1f")
	default:
		return fmt.Sprint(x)
	}
}
