package report

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/AlecFessler/Zag/src/analysis"
	"github.com/AlecFessler/Zag/src/trace"
)

// writeChart renders a chart to a PNG file. Render failures on degenerate
// series (single point, zero range) are logged and skipped rather than
// failing the batch; file creation problems are real errors.
func writeChart(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := render(f); err != nil {
		trace.Warnf("chart render skipped for %s: %v", path, err)
		return nil
	}
	return nil
}

func baseChart(title, xlabel, ylabel string) chart.Chart {
	return chart.Chart{
		Title:      title,
		Width:      960,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: xlabel},
		YAxis:      chart.YAxis{Name: ylabel},
	}
}

func linePlot(path, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) < 2 {
		trace.Debugf("skipping %s: %d points", path, len(xs))
		return nil
	}
	ch := baseChart(title, xlabel, ylabel)
	ch.Series = []chart.Series{chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
	}}
	return writeChart(path, func(f *os.File) error { return ch.Render(chart.PNG, f) })
}

func scatterPlot(path, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) < 2 {
		trace.Debugf("skipping %s: %d points", path, len(xs))
		return nil
	}
	ch := baseChart(title, xlabel, ylabel)
	ch.Series = []chart.Series{chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    2,
			DotColor:    chart.ColorBlue.WithAlpha(90),
		},
	}}
	return writeChart(path, func(f *os.File) error { return ch.Render(chart.PNG, f) })
}

// binCounts buckets a series into equal-width bins. When xmax > 0 the
// histogram range is [0, xmax] (zoomed view); otherwise it spans the data.
func binCounts(series []float64, bins int, xmax float64) (centers, counts []float64) {
	if len(series) == 0 || bins <= 0 {
		return nil, nil
	}
	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if xmax > 0 {
		lo, hi = 0, xmax
	}
	if hi <= lo {
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)
	counts = make([]float64, bins)
	for _, v := range series {
		idx := int((v - lo) / width)
		if idx < 0 {
			continue
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	centers = make([]float64, bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}
	return centers, counts
}

// histogramPlot renders binned counts as a frequency polygon over bin
// centers. logy plots log10(count+1) to keep tails visible.
func histogramPlot(path, title string, series []float64, bins int, xmax float64, logy bool) error {
	centers, counts := binCounts(series, bins, xmax)
	if len(centers) < 2 {
		trace.Debugf("skipping %s: insufficient bins", path)
		return nil
	}
	ylabel := "count"
	if logy {
		ylabel = "log10(count+1)"
		for i, c := range counts {
			counts[i] = math.Log10(c + 1)
		}
	}
	return linePlot(path, title, "cycles", ylabel, centers, counts)
}

func cdfPlot(path, title string, e analysis.ECDF, xmax float64) error {
	if len(e.Values) < 2 {
		trace.Debugf("skipping %s: %d points", path, len(e.Values))
		return nil
	}
	ch := baseChart(title, "cycles", "CDF")
	if xmax > 0 {
		ch.XAxis.Range = &chart.ContinuousRange{Min: 0, Max: xmax}
	}
	ch.Series = []chart.Series{chart.ContinuousSeries{
		XValues: e.Values,
		YValues: e.Probs,
		Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
	}}
	return writeChart(path, func(f *os.File) error { return ch.Render(chart.PNG, f) })
}

func barPlot(path, title, ylabel string, labels []string, values []float64) error {
	if len(values) == 0 {
		trace.Debugf("skipping %s: no bars", path)
		return nil
	}
	bars := make([]chart.Value, 0, len(values))
	for i, v := range values {
		bars = append(bars, chart.Value{Label: labels[i], Value: v})
	}
	ch := chart.BarChart{
		Title:      title,
		Width:      960,
		Height:     480,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Name: ylabel},
		Bars:       bars,
	}
	return writeChart(path, func(f *os.File) error { return ch.Render(chart.PNG, f) })
}
