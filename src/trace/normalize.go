package trace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw is one unparsed capture record keyed by column name.
type Raw map[string]any

// ParseBool coerces a raw cell into a boolean. Strings are trimmed,
// lowercased and matched against the accepted true spellings; every other
// type falls back to native truthiness (non-zero numbers are true).
func ParseBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "t", "yes", "y":
			return true
		}
		return false
	default:
		return toFloat(v) != 0
	}
}

// toFloat coerces a raw cell into a float64, NaN when unparseable. Malformed
// numeric cells are tolerated here and excluded from statistics later, never
// treated as fatal.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// toSentinelInt coerces a discrete group-key cell: numeric-coerce, substitute
// -1 for NaN, then truncate.
func toSentinelInt(v any) int {
	f := toFloat(v)
	if math.IsNaN(f) {
		return -1
	}
	return int(f)
}

// toString coerces unconditionally; label columns never become NaN.
func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Normalize converts one raw record into an Event. Per-cell defects resolve
// locally (NaN or sentinel); the only error is an unrecognized op label, which
// is a data-quality problem the caller must surface rather than a value to
// silently misclassify.
//
// seq is the fallback sequence index used when the i column is unparseable.
func Normalize(raw Raw, d Descriptor, seq int) (Event, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(toString(raw["op"]))))
	if op != OpAlloc && op != OpFree {
		return Event{}, fmt.Errorf("unrecognized op %q", toString(raw["op"]))
	}
	e := Event{
		Op:               op,
		Category:         toString(raw["type"]),
		SizeBytes:        toFloat(raw["size"]),
		LatencyCycles:    toFloat(raw["cycles"]),
		ReserveOccupancy: math.NaN(),
		Depth:            -1,
		SplitCount:       -1,
		Seq:              seq,
	}
	if idx := toFloat(raw["i"]); !math.IsNaN(idx) {
		e.Seq = int(idx)
	}
	if d.HasReserve {
		// Reserve metadata applies to allocations only; free events keep
		// the sentinels regardless of what the row says.
		if op == OpAlloc {
			e.FromReserve = ParseBool(raw["from_tree"])
			if e.FromReserve {
				e.Depth = toSentinelInt(raw["depth"])
			}
		}
		e.ReserveOccupancy = toFloat(raw["tree_count"])
	}
	if d.HasSplits && op == OpAlloc {
		e.SplitCount = toSentinelInt(raw["splits"])
	}
	return e, nil
}
