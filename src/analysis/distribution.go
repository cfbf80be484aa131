package analysis

import (
	"math"
	"sort"
)

// ECDF pairs sorted observations with cumulative probabilities. The k-th
// smallest value (0-indexed) maps to k/(n-1); a singleton series maps to
// probability 0.0.
type ECDF struct {
	Values []float64
	Probs  []float64
}

// NewECDF builds the empirical CDF of a NaN-free series. The input is copied
// and sorted; an empty series yields an empty ECDF.
func NewECDF(series []float64) ECDF {
	n := len(series)
	if n == 0 {
		return ECDF{}
	}
	vals := append([]float64(nil), series...)
	sort.Float64s(vals)
	probs := make([]float64, n)
	if n > 1 {
		for k := range probs {
			probs[k] = float64(k) / float64(n-1)
		}
	}
	return ECDF{Values: vals, Probs: probs}
}

// Zoom is the quantile-clipped sub-distribution used to inspect the
// fast-path body separate from tail outliers.
type Zoom struct {
	// Values are the retained observations (<= the clip quantile), sorted.
	Values []float64
	// Bound is the presentation upper bound: the clip value with a 0.1%
	// margin so the boundary itself is not clipped off by renderer rounding.
	Bound float64
}

// ZoomClip clips a NaN-free series at its q-th quantile. ok is false when the
// series is empty or the quantile is not finite; callers treat that as skip,
// not as an error.
func ZoomClip(series []float64, q float64) (Zoom, bool) {
	if len(series) == 0 {
		return Zoom{}, false
	}
	vals := append([]float64(nil), series...)
	sort.Float64s(vals)
	v := percentile(vals, q)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Zoom{}, false
	}
	cut := sort.SearchFloat64s(vals, math.Nextafter(v, math.Inf(1)))
	return Zoom{Values: vals[:cut], Bound: v * 1.001}, true
}
