package trace

// Operation identifies what an allocator event recorded. Values are kept as
// the lowercase labels used in capture files.
type Operation string

const (
	OpAlloc Operation = "alloc"
	OpFree  Operation = "free"
)

// SchemaKind selects which optional columns a capture carries. Tree-backed
// allocators log reserve metadata (from_tree/depth/tree_count); buddy-style
// allocators log split counts.
type SchemaKind int

const (
	SchemaTree SchemaKind = iota
	SchemaBuddy
)

func (k SchemaKind) String() string {
	if k == SchemaBuddy {
		return "buddy"
	}
	return "tree"
}

// Descriptor records which optional field sets a capture actually carries.
// Both may be present at once; either absent set falls back to sentinels.
type Descriptor struct {
	Kind       SchemaKind
	HasReserve bool // from_tree, depth, tree_count columns present
	HasSplits  bool // splits column present
}

// Event is one normalized allocator operation observation.
//
// Missing numeric measurements are NaN so they can be excluded per metric
// downstream; discrete group keys (Depth, SplitCount) use a -1 sentinel
// instead so they stay usable as map keys without special-casing.
type Event struct {
	Op       Operation
	Category string

	// FromReserve reports whether an allocation was served from the
	// pre-populated reserve tree. Only meaningful for alloc events.
	FromReserve bool
	// Depth is the reserve-tree depth the allocation was served from,
	// -1 when not applicable.
	Depth int
	// SplitCount is the number of buddy splits performed, -1 when not
	// applicable.
	SplitCount int

	SizeBytes        float64
	ReserveOccupancy float64
	LatencyCycles    float64

	// Seq is the capture-order index of the event.
	Seq int
}
