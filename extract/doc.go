// Package extract aggregates the rows of a frame.Table into intervals.
//
// Intervals are defined by an ascending list of boundary keys. Each output
// row is keyed by the boundary that opens its interval and holds one
// accumulator per field. Rows before the first boundary belong to the first
// interval and rows after the last boundary belong to the last one.
// Intervals without rows produce no output row.
//
// # Collectors
//
// Any aggregation can be plugged in through a Collector:
//
//	count := extract.CollectorFuncs[string, float64, int]{
//	    SeedFunc: func(string, float64) int { return 1 },
//	    FoldFunc: func(n *int, _ float64) { *n++ },
//	}
//	counts, err := extract.Extract(tbl, legs, count, extract.Window[float64]{})
//
// # Ready-made Aggregations
//
//	// Running statistics per leg
//	legs, err := extract.ExtractValueStats(tbl, boundaries, extract.Window[float64]{}, units)
//
//	// Start, end and most frequent value per leg
//	modes, err := extract.ExtractCategorical(phases, boundaries, extract.Window[float64]{})
//
//	// Whole table
//	all, err := extract.DescribeValues(tbl, units)
//	between := extract.ValueStatsBetween(tbl, 100, 200, units)
package extract
