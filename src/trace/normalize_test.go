package trace

import (
	"math"
	"testing"
)

func TestParseBool(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"T", true},
		{"t", true},
		{"Yes", true},
		{"y", true},
		{" y ", true},
		{"no", false},
		{"", false},
		{"0", false},
		{"false", false},
		{"maybe", false},
		{1, true},
		{0, false},
		{1.5, true},
		{true, true},
		{nil, false},
	}
	for _, c := range cases {
		if got := ParseBool(c.in); got != c.want {
			t.Fatalf("ParseBool(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeMalformedCellsBecomeNaN(t *testing.T) {
	raw := Raw{"op": "alloc", "type": "small", "i": "0", "cycles": "NaN_text", "size": "not_a_number"}
	e, err := Normalize(raw, Descriptor{}, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !math.IsNaN(e.LatencyCycles) {
		t.Fatalf("expected NaN cycles, got %v", e.LatencyCycles)
	}
	if !math.IsNaN(e.SizeBytes) {
		t.Fatalf("expected NaN size, got %v", e.SizeBytes)
	}
	if e.Seq != 0 {
		t.Fatalf("expected seq 0, got %d", e.Seq)
	}
}

func TestNormalizeDepthSentinel(t *testing.T) {
	d := Descriptor{HasReserve: true}
	// Reserve-served alloc with a parseable depth.
	e, err := Normalize(Raw{"op": "alloc", "type": "a", "i": "0", "cycles": "10", "size": "64",
		"from_tree": "true", "depth": "3", "tree_count": "12"}, d, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !e.FromReserve || e.Depth != 3 {
		t.Fatalf("expected from_tree depth=3, got %+v", e)
	}
	if e.ReserveOccupancy != 12 {
		t.Fatalf("expected tree_count 12, got %v", e.ReserveOccupancy)
	}
	// Non-reserve alloc keeps the sentinel even if the row carries a depth.
	e, err = Normalize(Raw{"op": "alloc", "type": "a", "i": "1", "cycles": "10", "size": "64",
		"from_tree": "false", "depth": "5", "tree_count": "12"}, d, 1)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.FromReserve || e.Depth != -1 {
		t.Fatalf("expected sentinel depth, got %+v", e)
	}
	// Malformed depth on a reserve-served alloc falls back to -1.
	e, err = Normalize(Raw{"op": "alloc", "type": "a", "i": "2", "cycles": "10", "size": "64",
		"from_tree": "1", "depth": "junk", "tree_count": ""}, d, 2)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Depth != -1 {
		t.Fatalf("expected depth -1 for junk cell, got %d", e.Depth)
	}
	if !math.IsNaN(e.ReserveOccupancy) {
		t.Fatalf("expected NaN occupancy for empty cell, got %v", e.ReserveOccupancy)
	}
}

func TestNormalizeFreeIgnoresReserveFields(t *testing.T) {
	d := Descriptor{HasReserve: true}
	e, err := Normalize(Raw{"op": "free", "type": "a", "i": "0", "cycles": "10", "size": "64",
		"from_tree": "true", "depth": "4", "tree_count": "7"}, d, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.FromReserve || e.Depth != -1 {
		t.Fatalf("free events must keep reserve sentinels, got %+v", e)
	}
	// Occupancy is a measurement of the structure, not of the operation path.
	if e.ReserveOccupancy != 7 {
		t.Fatalf("expected occupancy 7, got %v", e.ReserveOccupancy)
	}
}

func TestNormalizeSplits(t *testing.T) {
	d := Descriptor{Kind: SchemaBuddy, HasSplits: true}
	e, err := Normalize(Raw{"op": "alloc", "type": "a", "i": "0", "cycles": "10", "size": "64", "splits": "2"}, d, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.SplitCount != 2 {
		t.Fatalf("expected splits 2, got %d", e.SplitCount)
	}
	e, err = Normalize(Raw{"op": "free", "type": "a", "i": "1", "cycles": "10", "size": "64", "splits": "2"}, d, 1)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.SplitCount != -1 {
		t.Fatalf("free events must keep the splits sentinel, got %d", e.SplitCount)
	}
}

func TestNormalizeOpLabels(t *testing.T) {
	// Case-insensitive accepted labels.
	for _, s := range []string{"alloc", "Alloc", "ALLOC", " alloc "} {
		e, err := Normalize(Raw{"op": s, "type": "a", "i": "0", "cycles": "1", "size": "1"}, Descriptor{}, 0)
		if err != nil {
			t.Fatalf("normalize %q: %v", s, err)
		}
		if e.Op != OpAlloc {
			t.Fatalf("expected alloc for %q, got %q", s, e.Op)
		}
	}
	// Unknown labels are a data-quality error, not a silent classification.
	if _, err := Normalize(Raw{"op": "realloc", "type": "a", "i": "0", "cycles": "1", "size": "1"}, Descriptor{}, 0); err == nil {
		t.Fatalf("expected error for unknown op")
	}
}

func TestNormalizeSeqFallback(t *testing.T) {
	e, err := Normalize(Raw{"op": "alloc", "type": "a", "i": "junk", "cycles": "1", "size": "1"}, Descriptor{}, 41)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Seq != 41 {
		t.Fatalf("expected fallback seq 41, got %d", e.Seq)
	}
}
