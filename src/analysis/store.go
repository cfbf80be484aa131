package analysis

import (
	"math"

	"github.com/AlecFessler/Zag/src/trace"
)

// Field names a numeric column of the canonical event shape. The string
// values match the capture column names so exported tables stay aligned
// with the input schema.
type Field string

const (
	FieldSize      Field = "size"
	FieldOccupancy Field = "tree_count"
	FieldDepth     Field = "depth"
	FieldSplits    Field = "splits"
	FieldCycles    Field = "cycles"
	FieldSeq       Field = "i"
)

func fieldValue(e trace.Event, f Field) float64 {
	switch f {
	case FieldSize:
		return e.SizeBytes
	case FieldOccupancy:
		return e.ReserveOccupancy
	case FieldDepth:
		return float64(e.Depth)
	case FieldSplits:
		return float64(e.SplitCount)
	case FieldCycles:
		return e.LatencyCycles
	case FieldSeq:
		return float64(e.Seq)
	}
	return math.NaN()
}

// Store is an immutable, capture-ordered collection of normalized events.
// The common operation and reserve-path views are built once at construction;
// everything else is a lazy projection.
type Store struct {
	events  []trace.Event
	alloc   View
	free    View
	reserve View // alloc events served from the reserve
}

// NewStore builds a store over events. The slice is retained; callers must
// not mutate it afterwards.
func NewStore(events []trace.Event) *Store {
	s := &Store{events: events}
	s.alloc = s.All().Filter(func(e trace.Event) bool { return e.Op == trace.OpAlloc })
	s.free = s.All().Filter(func(e trace.Event) bool { return e.Op == trace.OpFree })
	s.reserve = s.alloc.Filter(func(e trace.Event) bool { return e.FromReserve })
	return s
}

func (s *Store) Len() int { return len(s.events) }

// All returns the view over every event in capture order.
func (s *Store) All() View {
	idx := make([]int, len(s.events))
	for i := range idx {
		idx[i] = i
	}
	return View{store: s, idx: idx}
}

// ByOperation returns the cached view for an operation kind. Unknown kinds
// yield an empty view.
func (s *Store) ByOperation(op trace.Operation) View {
	switch op {
	case trace.OpAlloc:
		return s.alloc
	case trace.OpFree:
		return s.free
	}
	return View{store: s}
}

// ReserveServed returns the cached view of allocations served from the
// reserve structure.
func (s *Store) ReserveServed() View { return s.reserve }

// View is a read-only logical projection of a Store. Filtering composes
// index lists without copying events.
type View struct {
	store *Store
	idx   []int
}

func (v View) Len() int    { return len(v.idx) }
func (v View) Empty() bool { return len(v.idx) == 0 }

// At returns the i-th event of the view in capture order.
func (v View) At(i int) trace.Event { return v.store.events[v.idx[i]] }

// Filter returns the sub-view of events satisfying pred.
func (v View) Filter(pred func(e trace.Event) bool) View {
	out := View{store: v.store}
	for _, i := range v.idx {
		if pred(v.store.events[i]) {
			out.idx = append(out.idx, i)
		}
	}
	return out
}

// Column materializes a numeric field, excluding NaN entries. This is the
// single place missing data is dropped: every downstream count denominator
// reflects only non-missing observations of that one field.
func (v View) Column(f Field) []float64 {
	out := make([]float64, 0, len(v.idx))
	for _, i := range v.idx {
		if val := fieldValue(v.store.events[i], f); !math.IsNaN(val) {
			out = append(out, val)
		}
	}
	return out
}

// Pairs materializes two fields side by side, dropping rows where either is
// NaN. Used for scatter and over-time series where x and y must stay aligned.
func (v View) Pairs(x, y Field) (xs, ys []float64) {
	for _, i := range v.idx {
		xv := fieldValue(v.store.events[i], x)
		yv := fieldValue(v.store.events[i], y)
		if math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys
}
