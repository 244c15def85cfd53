// Package interp resamples table columns onto a new index.
//
// Two methods are available:
//
//	// Linear interpolation between the bracketing rows
//	out, err := interp.Linear(tbl, targets)
//
//	// Natural cubic spline through every row
//	out, err := interp.Spline(tbl, targets)
//
// Tables keyed by time.Time use LinearTime and SplineTime, which work on
// seconds since the Unix epoch.
//
// Targets must be strictly ascending. A target before the first source key
// takes the first value and a target after the last key takes the last
// value. An empty source gives an empty table with the source fields.
//
// The low level helpers LinearAt and NewSpline work on plain slices.
package interp
