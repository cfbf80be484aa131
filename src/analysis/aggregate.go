package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/AlecFessler/Zag/src/trace"
)

// SummaryRecord is one row of the exported latency summary table. All
// statistics are NaN when Count is zero; the row itself is still emitted so
// consumers see a stable row set even for empty slices.
type SummaryRecord struct {
	Tag   string
	Count int
	Min   float64
	P50   float64
	P90   float64
	P95   float64
	P99   float64
	P999  float64
	Mean  float64
	Std   float64
	Max   float64
}

// percentile computes the q-th quantile of sorted by linear interpolation
// between order statistics at rank q*(n-1).
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	rank := q * float64(n-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Summarize computes one summary row over a NaN-free latency series.
func Summarize(tag string, cycles []float64) SummaryRecord {
	rec := SummaryRecord{Tag: tag, Count: len(cycles)}
	if len(cycles) == 0 {
		nan := math.NaN()
		rec.Min, rec.P50, rec.P90, rec.P95, rec.P99, rec.P999 = nan, nan, nan, nan, nan, nan
		rec.Mean, rec.Std, rec.Max = nan, nan, nan
		return rec
	}
	cp := append([]float64(nil), cycles...)
	sort.Float64s(cp)
	rec.Min = cp[0]
	rec.Max = cp[len(cp)-1]
	rec.P50 = percentile(cp, 0.50)
	rec.P90 = percentile(cp, 0.90)
	rec.P95 = percentile(cp, 0.95)
	rec.P99 = percentile(cp, 0.99)
	rec.P999 = percentile(cp, 0.999)
	mean, std := stat.MeanStdDev(cp, nil)
	rec.Mean = mean
	// Sample stddev (Bessel) is undefined for n=1; report 0.0 so singleton
	// groups stay numeric and comparable.
	if len(cp) < 2 {
		std = 0.0
	}
	rec.Std = std
	return rec
}

// SummarizeView computes one summary row over a view's non-missing cycles.
func SummarizeView(tag string, v View) SummaryRecord {
	return Summarize(tag, v.Column(FieldCycles))
}

// GroupByCategory emits one summary row per distinct category label in the
// view, keys in lexical order. Keys are enumerated over every event, so a
// label whose observations all have missing cycles still gets its count=0
// row; consumers rely on a stable row set.
func GroupByCategory(v View, tagf func(cat string) string) []SummaryRecord {
	groups := map[string][]float64{}
	for i := 0; i < v.Len(); i++ {
		e := v.At(i)
		if _, ok := groups[e.Category]; !ok {
			groups[e.Category] = nil
		}
		if math.IsNaN(e.LatencyCycles) {
			continue
		}
		groups[e.Category] = append(groups[e.Category], e.LatencyCycles)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	recs := make([]SummaryRecord, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, Summarize(tagf(k), groups[k]))
	}
	return recs
}

// GroupByInt emits one summary row per distinct integer value of a discrete
// field (depth, splits), keys in ascending numeric order. As with
// GroupByCategory, every key present in the view keeps its row even when all
// of its cycles are missing.
func GroupByInt(v View, f Field, tagf func(k int) string) []SummaryRecord {
	groups := map[int][]float64{}
	for i := 0; i < v.Len(); i++ {
		e := v.At(i)
		k := int(fieldValue(e, f))
		if _, ok := groups[k]; !ok {
			groups[k] = nil
		}
		if math.IsNaN(e.LatencyCycles) {
			continue
		}
		groups[k] = append(groups[k], e.LatencyCycles)
	}
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	recs := make([]SummaryRecord, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, Summarize(tagf(k), groups[k]))
	}
	return recs
}

// MedianByInt returns the distinct values of a discrete field and the median
// latency per value, keys ascending. Used for the by-depth and by-splits
// artifacts.
func MedianByInt(v View, f Field) (keys []int, medians []float64) {
	groups := map[int][]float64{}
	for i := 0; i < v.Len(); i++ {
		e := v.At(i)
		if math.IsNaN(e.LatencyCycles) {
			continue
		}
		k := int(fieldValue(e, f))
		groups[k] = append(groups[k], e.LatencyCycles)
	}
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		cp := groups[k]
		sort.Float64s(cp)
		medians = append(medians, percentile(cp, 0.5))
	}
	return keys, medians
}

// MedianByCategory returns the distinct category labels of a view and the
// median latency per label, keys lexical.
func MedianByCategory(v View) (cats []string, medians []float64) {
	groups := map[string][]float64{}
	for i := 0; i < v.Len(); i++ {
		e := v.At(i)
		if math.IsNaN(e.LatencyCycles) {
			continue
		}
		groups[e.Category] = append(groups[e.Category], e.LatencyCycles)
	}
	for k := range groups {
		cats = append(cats, k)
	}
	sort.Strings(cats)
	for _, k := range cats {
		cp := groups[k]
		sort.Float64s(cp)
		medians = append(medians, percentile(cp, 0.5))
	}
	return cats, medians
}

// SummarySet computes the canonical battery of summary rows for a capture:
// per operation, per reserve path, per category, and per discrete depth or
// splits value where the schema carries them. Row order is deterministic.
func SummarySet(s *Store, desc trace.Descriptor) []SummaryRecord {
	alloc := s.ByOperation(trace.OpAlloc)
	free := s.ByOperation(trace.OpFree)

	var recs []SummaryRecord
	recs = append(recs, SummarizeView("alloc_all", alloc))
	if desc.HasReserve {
		recs = append(recs, SummarizeView("alloc_from_tree", s.ReserveServed()))
		recs = append(recs, SummarizeView("alloc_not_from_tree",
			alloc.Filter(func(e trace.Event) bool { return !e.FromReserve })))
	}
	recs = append(recs, GroupByCategory(alloc, func(c string) string {
		return fmt.Sprintf("alloc_type=%s", c)
	})...)
	if desc.HasReserve {
		recs = append(recs, GroupByInt(s.ReserveServed(), FieldDepth, func(k int) string {
			return fmt.Sprintf("alloc_depth=%d", k)
		})...)
	}
	if desc.HasSplits {
		withSplits := alloc.Filter(func(e trace.Event) bool { return e.SplitCount >= 0 })
		recs = append(recs, GroupByInt(withSplits, FieldSplits, func(k int) string {
			return fmt.Sprintf("alloc_splits=%d", k)
		})...)
	}
	recs = append(recs, SummarizeView("free_all", free))
	recs = append(recs, GroupByCategory(free, func(c string) string {
		return fmt.Sprintf("free_type=%s", c)
	})...)
	return recs
}
