package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/AlecFessler/Zag/src/analysis"
	"github.com/AlecFessler/Zag/src/trace"
)

// Options configures one report run. There is no package-level state; output
// location and zoom parameters travel with the call.
type Options struct {
	OutDir   string
	ZoomQ    float64 // quantile for zoomed distribution artifacts
	ZoomBins int     // bins for zoomed histograms
	Plots    bool    // render PNG artifacts in addition to CSV tables
}

// DefaultOptions mirror the capture tooling defaults.
func DefaultOptions(outDir string) Options {
	return Options{OutDir: outDir, ZoomQ: 0.99, ZoomBins: 200, Plots: true}
}

// correlationFields selects the numeric columns for the alloc correlation
// matrix based on the schema variant.
func correlationFields(desc trace.Descriptor) []analysis.Field {
	fields := []analysis.Field{analysis.FieldSize}
	if desc.HasReserve {
		fields = append(fields, analysis.FieldOccupancy, analysis.FieldDepth)
	}
	if desc.HasSplits {
		fields = append(fields, analysis.FieldSplits)
	}
	return append(fields, analysis.FieldCycles)
}

// Run produces the full artifact set for a capture: the latency summary
// table, the alloc correlation matrix, the plot artifacts, and an index.
func Run(s *analysis.Store, desc trace.Descriptor, opts Options) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return errors.Wrap(err, "create outdir")
	}

	recs := analysis.SummarySet(s, desc)
	if err := WriteSummaryCSV(filepath.Join(opts.OutDir, "latency_summary.csv"), recs); err != nil {
		return err
	}
	trace.Infof("wrote latency_summary.csv (%d rows)", len(recs))

	alloc := s.ByOperation(trace.OpAlloc)
	if !alloc.Empty() {
		m := analysis.Correlate(alloc, correlationFields(desc))
		if err := WriteCorrelationCSV(filepath.Join(opts.OutDir, "alloc_corr.csv"), m); err != nil {
			return err
		}
	}

	if opts.Plots {
		if err := renderAll(s, desc, opts); err != nil {
			return err
		}
	}
	return WriteIndex(opts.OutDir)
}

// renderAll emits the plot artifact set for both operations plus the
// schema-variant extras.
func renderAll(s *analysis.Store, desc trace.Descriptor, opts Options) error {
	out := func(name string) string { return filepath.Join(opts.OutDir, name) }

	for _, op := range []trace.Operation{trace.OpAlloc, trace.OpFree} {
		v := s.ByOperation(op)
		if v.Empty() {
			continue
		}
		prefix := string(op)
		title := titleFor(op)
		cycles := v.Column(analysis.FieldCycles)

		if err := histogramPlot(out(prefix+"_cycles_hist.png"),
			fmt.Sprintf("%s: cycles histogram", title), cycles, 200, 0, true); err != nil {
			return err
		}
		if err := cdfPlot(out(prefix+"_cycles_cdf.png"),
			fmt.Sprintf("%s: cycles CDF", title), analysis.NewECDF(cycles), 0); err != nil {
			return err
		}
		if z, ok := analysis.ZoomClip(cycles, opts.ZoomQ); ok {
			zoomPct := int(opts.ZoomQ * 100)
			if err := histogramPlot(out(prefix+"_cycles_hist_zoom.png"),
				fmt.Sprintf("%s: cycles histogram (<= p%d zoom)", title, zoomPct),
				z.Values, opts.ZoomBins, z.Bound, false); err != nil {
				return err
			}
			if err := cdfPlot(out(prefix+"_cycles_cdf_zoom.png"),
				fmt.Sprintf("%s: cycles CDF (<= p%d zoom)", title, zoomPct),
				analysis.NewECDF(z.Values), z.Bound); err != nil {
				return err
			}
		}

		seqX, seqY := v.Pairs(analysis.FieldSeq, analysis.FieldCycles)
		if err := linePlot(out(prefix+"_cycles_over_time.png"),
			fmt.Sprintf("%s: cycles over time", title),
			fmt.Sprintf("operation index (%s)", prefix), "cycles", seqX, seqY); err != nil {
			return err
		}

		sizeX, sizeY := v.Pairs(analysis.FieldSize, analysis.FieldCycles)
		if err := scatterPlot(out(prefix+"_cycles_vs_size.png"),
			fmt.Sprintf("%s: cycles vs. size", title),
			"size (bytes)", "cycles", sizeX, sizeY); err != nil {
			return err
		}
		if desc.HasReserve {
			occX, occY := v.Pairs(analysis.FieldOccupancy, analysis.FieldCycles)
			if err := scatterPlot(out(prefix+"_cycles_vs_tree_count.png"),
				fmt.Sprintf("%s: cycles vs. tree_count", title),
				"tree_count", "cycles", occX, occY); err != nil {
				return err
			}
		}

		cats, meds := analysis.MedianByCategory(v)
		if err := barPlot(out(prefix+"_median_cycles_by_type.png"),
			fmt.Sprintf("%s: median cycles by AllocType", title),
			"median cycles", cats, meds); err != nil {
			return err
		}
	}

	if desc.HasReserve {
		rv := s.ReserveServed()
		nrv := s.ByOperation(trace.OpAlloc).Filter(func(e trace.Event) bool { return !e.FromReserve })
		if err := histogramPlot(out("alloc_from_tree_hist.png"),
			"Alloc (from_tree): cycles histogram",
			rv.Column(analysis.FieldCycles), 100, 0, true); err != nil {
			return err
		}
		if err := histogramPlot(out("alloc_not_from_tree_hist.png"),
			"Alloc (not from_tree): cycles histogram",
			nrv.Column(analysis.FieldCycles), 100, 0, true); err != nil {
			return err
		}
		depthX, depthY := rv.Pairs(analysis.FieldDepth, analysis.FieldCycles)
		if err := scatterPlot(out("alloc_from_tree_cycles_vs_depth.png"),
			"Alloc (from_tree): cycles vs. tree depth",
			"tree depth", "cycles", depthX, depthY); err != nil {
			return err
		}
		keys, meds := analysis.MedianByInt(rv, analysis.FieldDepth)
		if err := linePlot(out("alloc_from_tree_median_cycles_by_depth.png"),
			"Alloc (from_tree): median cycles by depth",
			"tree depth", "median cycles", intsToFloats(keys), meds); err != nil {
			return err
		}
	}
	if desc.HasSplits {
		sv := s.ByOperation(trace.OpAlloc).Filter(func(e trace.Event) bool { return e.SplitCount >= 0 })
		splitX, splitY := sv.Pairs(analysis.FieldSplits, analysis.FieldCycles)
		if err := scatterPlot(out("alloc_cycles_vs_splits.png"),
			"Alloc: cycles vs. splits", "splits", "cycles", splitX, splitY); err != nil {
			return err
		}
		keys, meds := analysis.MedianByInt(sv, analysis.FieldSplits)
		if err := linePlot(out("alloc_median_cycles_by_splits.png"),
			"Alloc: median cycles by splits",
			"splits", "median cycles", intsToFloats(keys), meds); err != nil {
			return err
		}
	}
	return nil
}

func titleFor(op trace.Operation) string {
	if op == trace.OpFree {
		return "Free"
	}
	return "Alloc"
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
