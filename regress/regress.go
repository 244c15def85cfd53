// Package regress fits simple linear regressions between table columns.
//
//	lines := regress.LinearRegression(tbl, "speed")
//	fuel := lines["fuel_flow"].At(120)
//
// Degenerate inputs never fail: no usable pairs give the zero Line and an x
// column without variance gives a flat line through the mean of y. Pairs
// where either value is NaN or infinite are ignored.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goframe/frame"
)

// Line is the affine function Intercept + Slope*x.
type Line struct {
	Intercept float64
	Slope     float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// Func returns the line as a function.
func (l Line) Func() func(float64) float64 {
	return l.At
}

func (l Line) String() string {
	return fmt.Sprintf("y = %g + %g*x", l.Intercept, l.Slope)
}

func finitePairs(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Fit computes the least squares line of y against x.
func Fit(x, y []float64) Line {
	xs, ys := finitePairs(x, y)
	if len(xs) == 0 {
		return Line{}
	}

	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)
	floats.AddConst(-meanX, xs)
	floats.AddConst(-meanY, ys)

	variance := floats.Dot(xs, xs)
	if variance == 0 {
		return Line{Intercept: meanY}
	}
	slope := floats.Dot(xs, ys) / variance
	return Line{Intercept: meanY - slope*meanX, Slope: slope}
}

// LinearRegression fits every other column of t against the column x.
// A missing or empty x gives an empty map.
func LinearRegression[I any, F comparable](t *frame.Table[I, float64, F], x F) map[F]Line {
	out := make(map[F]Line)
	xcol, ok := t.Column(x)
	if !ok || xcol.Len() == 0 {
		return out
	}
	for _, f := range t.Fields() {
		if f == x {
			continue
		}
		ycol, _ := t.Column(f)
		out[f] = Fit(xcol.Values(), ycol.Values())
	}
	return out
}

// Correlation returns the Pearson correlation of columns a and b over their
// finite pairs. It reports false when either column is missing, fewer than
// two pairs remain, or a column has no variance.
func Correlation[I any, F comparable](t *frame.Table[I, float64, F], a, b F) (float64, bool) {
	acol, okA := t.Column(a)
	bcol, okB := t.Column(b)
	if !okA || !okB {
		return math.NaN(), false
	}
	xs, ys := finitePairs(acol.Values(), bcol.Values())
	if len(xs) < 2 {
		return math.NaN(), false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN(), false
	}
	return r, true
}

// Pair names two fields, in the order they appear in the table.
type Pair[F comparable] struct {
	A, B F
}

// Correlations returns the correlation of every pair of distinct fields
// for which Correlation is defined.
func Correlations[I any, F comparable](t *frame.Table[I, float64, F]) map[Pair[F]]float64 {
	out := make(map[Pair[F]]float64)
	fields := t.Fields()
	for i, a := range fields {
		for _, b := range fields[i+1:] {
			if r, ok := Correlation(t, a, b); ok {
				out[Pair[F]{A: a, B: b}] = r
			}
		}
	}
	return out
}
