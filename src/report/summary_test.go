package report

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlecFessler/Zag/src/analysis"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return rows
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency_summary.csv")
	recs := []analysis.SummaryRecord{
		analysis.Summarize("alloc_all", []float64{120, 300}),
		analysis.Summarize("free_all", nil),
	}
	if err := WriteSummaryCSV(path, recs); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := readCSV(t, path)
	wantHeader := "tag,count,min,p500,p900,p950,p990,p999,mean,std,max"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Fatalf("header = %q, want %q", got, wantHeader)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "alloc_all" || rows[1][1] != "2" || rows[1][2] != "120" {
		t.Fatalf("alloc row wrong: %v", rows[1])
	}
	// Empty groups keep their row, statistics serialized as NaN.
	if rows[2][0] != "free_all" || rows[2][1] != "0" || rows[2][2] != "NaN" {
		t.Fatalf("empty-group row wrong: %v", rows[2])
	}
}

func TestWriteCorrelationCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alloc_corr.csv")
	m := analysis.Matrix{
		Fields: []analysis.Field{analysis.FieldSize, analysis.FieldCycles},
		Coeffs: [][]float64{{1, 0.5}, {0.5, 1}},
	}
	if err := WriteCorrelationCSV(path, m); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "size" || rows[0][2] != "cycles" {
		t.Fatalf("header wrong: %v", rows[0])
	}
	if rows[1][0] != "size" || rows[1][1] != "1" || rows[1][2] != "0.5" {
		t.Fatalf("size row wrong: %v", rows[1])
	}
}

func TestFmtFloatNaN(t *testing.T) {
	if got := fmtFloat(math.NaN()); got != "NaN" {
		t.Fatalf("fmtFloat(NaN) = %q", got)
	}
	if got := fmtFloat(990.01); got != "990.01" {
		t.Fatalf("fmtFloat(990.01) = %q", got)
	}
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.csv", "ignored.dat"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("fixture: %v", err)
		}
	}
	if err := WriteIndex(dir); err != nil {
		t.Fatalf("index: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "README.txt"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, " - a.csv\n") || !strings.Contains(got, " - b.png\n") {
		t.Fatalf("index missing artifacts:\n%s", got)
	}
	if strings.Contains(got, "ignored.dat") {
		t.Fatalf("index should skip unknown extensions:\n%s", got)
	}
	if strings.Index(got, "a.csv") > strings.Index(got, "b.png") {
		t.Fatalf("index not sorted:\n%s", got)
	}
}
