// Package goframe provides an in-memory, index-aligned columnar data engine
// for numeric logs.
//
// A table holds named columns that share one strictly increasing index:
// sample numbers, elapsed seconds or timestamps. Tables are built row by
// row as a log is read, then sliced, filtered, merged and summarized.
//
// # Features
//
//   - Generic tables over any index type with a comparison function
//   - Checked and unchecked row appends with explicit validation
//   - Slicing, filtering, run trimming and projection by field
//   - Merging of logs sampled at different keys
//   - Running statistics (start, end, min, max, average, weighted average,
//     variance) with a configurable NaN policy
//   - Categorical statistics (first, last and most frequent value)
//   - Interval aggregation between boundary keys
//   - Quantiles with linear, lower, higher and midpoint interpolation
//   - Linear and natural cubic spline resampling
//   - Least squares regression and pairwise correlation
//   - CSV loading and writing for numeric and time indexes
//
// # Quick Start
//
// Load a log and summarize it:
//
//	t, _ := frame.LoadCSV("flight.csv", frame.DefaultCSVOptions())
//	summary, _ := extract.DescribeValues(t, nil)
//	fmt.Println(summary["altitude"].Average())
//
// Aggregate over ten minute legs:
//
//	legs, _ := extract.ExtractValueStats(t, []float64{0, 600, 1200}, extract.Window[float64]{}, nil)
//
// Resample on a regular grid:
//
//	grid, _ := interp.Linear(t, []float64{0, 0.5, 1, 1.5})
//
// # Packages
//
// The library is organized into the following packages:
//
//   - frame: Tables, columns, appends, slicing, merging and CSV
//   - stats: Running value and categorical statistics
//   - extract: Interval aggregation and column summaries
//   - quantile: Quantiles of every column
//   - interp: Linear and cubic spline interpolation
//   - regress: Linear regression and correlation
//
// The goframe command in cmd/goframe exposes these over CSV files.
//
// # References
//
//   - Hyndman, R.J., & Fan, Y. (1996). Sample Quantiles in Statistical Packages
//   - Press, W.H. et al. (2007). Numerical Recipes, 3rd ed., §3.3 Cubic Spline Interpolation
package goframe
