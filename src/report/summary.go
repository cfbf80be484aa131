package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/AlecFessler/Zag/src/analysis"
)

// summaryColumns is the fixed column order of the exported table. The pXXX
// names encode the quantile x1000 (p500 = median, p999 = 99.9th percentile).
var summaryColumns = []string{"tag", "count", "min", "p500", "p900", "p950", "p990", "p999", "mean", "std", "max"}

// fmtFloat renders statistics; NaN cells come out as the literal "NaN" so
// empty groups stay self-describing in the table.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSummaryCSV writes the latency summary table.
func WriteSummaryCSV(path string, recs []analysis.SummaryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create summary")
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(summaryColumns); err != nil {
		return errors.Wrap(err, "write summary header")
	}
	for _, r := range recs {
		row := []string{
			r.Tag,
			strconv.Itoa(r.Count),
			fmtFloat(r.Min),
			fmtFloat(r.P50),
			fmtFloat(r.P90),
			fmtFloat(r.P95),
			fmtFloat(r.P99),
			fmtFloat(r.P999),
			fmtFloat(r.Mean),
			fmtFloat(r.Std),
			fmtFloat(r.Max),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write summary row %s", r.Tag)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush summary")
}

// WriteCorrelationCSV writes a square correlation matrix as a row/column
// table: header of field names, then one labeled row per field.
func WriteCorrelationCSV(path string, m analysis.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create correlation")
	}
	defer f.Close()
	w := csv.NewWriter(f)
	header := make([]string, 0, len(m.Fields)+1)
	header = append(header, "")
	for _, fld := range m.Fields {
		header = append(header, string(fld))
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write correlation header")
	}
	for i, fld := range m.Fields {
		row := make([]string, 0, len(m.Fields)+1)
		row = append(row, string(fld))
		for j := range m.Fields {
			row = append(row, fmtFloat(m.At(i, j)))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write correlation row %s", fld)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush correlation")
}

// WriteIndex writes README.txt listing the generated artifacts, one per line.
func WriteIndex(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "read outdir")
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".png") || strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Generated plots and summaries:\n")
	for _, n := range names {
		b.WriteString(" - " + n + "\n")
	}
	return errors.Wrap(os.WriteFile(filepath.Join(dir, "README.txt"), []byte(b.String()), 0o644), "write index")
}
