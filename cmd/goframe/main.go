// Command goframe computes index-aligned statistics over CSV logs.
//
// Usage:
//
//	goframe describe flight.csv --weight dt --unit alt=ft
//	goframe quantiles flight.csv --q 0.05,0.5,0.95 --method midpoint
//	goframe extract flight.csv --at 0,600,1800 --metric average
//	goframe interpolate flight.csv --every 0.5 --method spline
//	goframe regress flight.csv --x speed
//	goframe merge engine.csv gps.csv --format csv
//
// Add --time when the index column holds timestamps.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}
