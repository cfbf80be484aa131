// latreader prints the latency summary table for a capture file to stdout,
// without writing any artifacts. Quick inspection tool for captured runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AlecFessler/Zag/src/analysis"
	"github.com/AlecFessler/Zag/src/trace"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "data/heap_latency.csv", "Path to latency capture CSV")
	flag.Parse()

	capture, err := trace.ReadCapture(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store := analysis.NewStore(capture.Events)
	recs := analysis.SummarySet(store, capture.Desc)

	fmt.Printf("Schema: %s, events: %d\n", capture.Desc.Kind, store.Len())
	fmt.Printf("%-28s %8s %10s %10s %10s %10s %10s %10s %12s %12s %10s\n",
		"tag", "count", "min", "p500", "p900", "p950", "p990", "p999", "mean", "std", "max")
	for _, r := range recs {
		fmt.Printf("%-28s %8d %10.1f %10.1f %10.1f %10.1f %10.1f %10.1f %12.2f %12.2f %10.1f\n",
			r.Tag, r.Count, r.Min, r.P50, r.P90, r.P95, r.P99, r.P999, r.Mean, r.Std, r.Max)
	}
}
