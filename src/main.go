// Allocator latency analyzer entrypoint.
//
// Offline batch analysis over a captured allocator latency CSV
// (data/heap_latency.csv or data/buddy_latency.csv): normalize the event log,
// compute grouped tail-latency summaries, the alloc correlation matrix, and
// distribution (histogram/CDF, full + zoomed) artifacts under the output
// directory.
//
// Design notes:
//   - Schema variant (tree vs buddy) is detected from the CSV header; both
//     variants run through the same engine.
//   - Per-cell defects (unparseable numbers) are tolerated and excluded per
//     metric; structural defects (missing columns, unknown op labels) abort
//     before any partial output is written.
//   - Dependency direction: main -> trace for ingest, analysis for
//     aggregation, report for exported artifacts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AlecFessler/Zag/src/analysis"
	"github.com/AlecFessler/Zag/src/report"
	"github.com/AlecFessler/Zag/src/trace"
)

func main() {
	outDir := flag.String("outdir", "plots", "Output directory for summaries and plots")
	zoomQ := flag.Float64("zoom-q", 0.99, "Quantile for zoomed distribution artifacts (e.g. 0.99 or 0.999)")
	zoomBins := flag.Int("zoom-bins", 200, "Bins for zoomed histograms")
	plots := flag.Bool("plots", true, "Render PNG plot artifacts (CSV tables are always written)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	trace.SetLogLevel(*logLevel)

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <latency.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	start := time.Now()
	capture, err := trace.ReadCapture(path)
	if err != nil {
		trace.Errorf("load failed: %v", err)
		os.Exit(1)
	}
	trace.TimeTrack(start, "load")

	store := analysis.NewStore(capture.Events)
	opts := report.Options{OutDir: *outDir, ZoomQ: *zoomQ, ZoomBins: *zoomBins, Plots: *plots}
	if err := report.Run(store, capture.Desc, opts); err != nil {
		trace.Errorf("report failed: %v", err)
		os.Exit(1)
	}
	trace.Infof("analysis complete: %d events -> %s", store.Len(), *outDir)
}
