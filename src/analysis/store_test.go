package analysis

import (
	"math"
	"testing"

	"github.com/AlecFessler/Zag/src/trace"
)

func TestStoreViews(t *testing.T) {
	store := NewStore(scenarioEvents())
	if store.Len() != 3 {
		t.Fatalf("store len = %d, want 3", store.Len())
	}
	if got := store.ByOperation(trace.OpAlloc).Len(); got != 2 {
		t.Fatalf("alloc view len = %d, want 2", got)
	}
	if got := store.ByOperation(trace.OpFree).Len(); got != 1 {
		t.Fatalf("free view len = %d, want 1", got)
	}
	if got := store.ReserveServed().Len(); got != 1 {
		t.Fatalf("reserve view len = %d, want 1", got)
	}
	if got := store.ByOperation("mmap").Len(); got != 0 {
		t.Fatalf("unknown op view should be empty, got %d", got)
	}
}

func TestViewFilterComposes(t *testing.T) {
	store := NewStore(scenarioEvents())
	v := store.ByOperation(trace.OpAlloc).Filter(func(e trace.Event) bool { return e.LatencyCycles > 200 })
	if v.Len() != 1 || v.At(0).LatencyCycles != 300 {
		t.Fatalf("composed filter wrong: len=%d", v.Len())
	}
}

func TestColumnExcludesNaN(t *testing.T) {
	events := scenarioEvents()
	events = append(events, trace.Event{Op: trace.OpAlloc, Category: "typeA", Depth: -1, SplitCount: -1,
		SizeBytes: 64, ReserveOccupancy: math.NaN(), LatencyCycles: math.NaN(), Seq: 3})
	store := NewStore(events)
	alloc := store.ByOperation(trace.OpAlloc)
	if got := len(alloc.Column(FieldCycles)); got != 2 {
		t.Fatalf("cycles column = %d values, want 2", got)
	}
	if got := len(alloc.Column(FieldSize)); got != 3 {
		t.Fatalf("size column = %d values, want 3", got)
	}
	// Pairs drops a row when either side is missing.
	xs, ys := alloc.Pairs(FieldSeq, FieldCycles)
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("pairs = %d/%d, want 2/2", len(xs), len(ys))
	}
}
