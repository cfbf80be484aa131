package trace

import (
	"encoding/csv"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// requiredColumns must all be present before any record is normalized;
// downstream grouping assumes the full canonical shape, so there is no
// partial-column recovery.
var requiredColumns = []string{"op", "type", "i", "cycles", "size"}

// Capture is a fully normalized event log plus the schema variant detected
// from its header.
type Capture struct {
	Events []Event
	Desc   Descriptor
}

// ReadCapture loads and normalizes a delimited capture file. Structural
// problems (unreadable file, missing required columns, ragged rows,
// unrecognized op labels) abort the whole batch; malformed cells do not.
func ReadCapture(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open capture")
	}
	defer f.Close()
	c, err := readCapture(f)
	if err != nil {
		return nil, errors.Wrapf(err, "capture %s", path)
	}
	return c, nil
}

func readCapture(r io.Reader) (*Capture, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, errors.Errorf("missing required column %q", name)
		}
	}
	_, hasFromTree := col["from_tree"]
	_, hasDepth := col["depth"]
	_, hasTreeCount := col["tree_count"]
	_, hasSplits := col["splits"]
	desc := Descriptor{
		HasReserve: hasFromTree || hasDepth || hasTreeCount,
		HasSplits:  hasSplits,
	}
	if desc.HasSplits && !desc.HasReserve {
		desc.Kind = SchemaBuddy
	}
	Debugf("capture schema: %s (reserve=%v splits=%v)", desc.Kind, desc.HasReserve, desc.HasSplits)

	var events []Event
	malformedCycles := 0
	for rowNum := 2; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", rowNum)
		}
		raw := make(Raw, len(col))
		for name, i := range col {
			raw[name] = row[i]
		}
		e, err := Normalize(raw, desc, len(events))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", rowNum)
		}
		if math.IsNaN(e.LatencyCycles) {
			malformedCycles++
		}
		events = append(events, e)
	}
	Infof("loaded %d events (%d with unparseable cycles)", len(events), malformedCycles)
	return &Capture{Events: events, Desc: desc}, nil
}
