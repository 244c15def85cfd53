package interp

import (
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/sartorproj/goframe/frame"
)

// Number is an index type that can be interpolated over.
type Number interface {
	constraints.Integer | constraints.Float
}

// LinearAt interpolates the points (xs[i], ys[i]) at every target. xs must
// be ascending. Targets outside xs take the nearest end value. Empty xs
// give nil.
func LinearAt(xs, ys []float64, targets []float64) []float64 {
	n := min(len(xs), len(ys))
	if n == 0 {
		return nil
	}
	xs, ys = xs[:n], ys[:n]

	out := make([]float64, len(targets))
	for i, x := range targets {
		// first knot >= x
		hi, found := slices.BinarySearch(xs, x)
		switch {
		case found:
			out[i] = ys[hi]
		case hi == 0:
			out[i] = ys[0]
		case hi == n:
			out[i] = ys[n-1]
		default:
			lo := hi - 1
			t := (x - xs[lo]) / (xs[hi] - xs[lo])
			out[i] = ys[lo] + t*(ys[hi]-ys[lo])
		}
	}
	return out
}

func checkTargets[I any](compare func(a, b I) int, targets []I) error {
	for i := 1; i < len(targets); i++ {
		if compare(targets[i-1], targets[i]) >= 0 {
			return fmt.Errorf("%w: target %d does not follow target %d", frame.ErrInconsistentIndexOrder, i, i-1)
		}
	}
	return nil
}

// resample runs fn on every column of t with the source keys and targets
// converted to float64, and builds the result keyed by targets.
func resample[I any, F comparable](t *frame.Table[I, float64, F], targets []I, toFloat func(I) float64, fn func(xs, ys, at []float64) ([]float64, error)) (*frame.Table[I, float64, F], error) {
	if err := checkTargets(t.Compare, targets); err != nil {
		return nil, err
	}
	if t.Len() == 0 || len(targets) == 0 {
		return frame.NewFunc[I, float64, F](t.Compare, t.Fields()...), nil
	}

	xs := make([]float64, t.Len())
	for i, k := range t.Index() {
		xs[i] = toFloat(k)
	}
	at := make([]float64, len(targets))
	for i, k := range targets {
		at[i] = toFloat(k)
	}

	columns := make(map[F][]float64)
	for _, f := range t.Fields() {
		col, _ := t.Column(f)
		values, err := fn(xs, col.Values(), at)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", f, err)
		}
		columns[f] = values
	}

	out, err := frame.FromColumnsFunc(t.Compare, targets, columns)
	if err != nil {
		return nil, err
	}
	return out.Select(t.Fields()...)
}

func linear(xs, ys, at []float64) ([]float64, error) {
	return LinearAt(xs, ys, at), nil
}

// spline fits the knots with a finite value only, since a single NaN would
// spread through the whole tridiagonal solve. A column with no finite value
// gives NaN everywhere.
func spline(xs, ys, at []float64) ([]float64, error) {
	kx := make([]float64, 0, len(xs))
	ky := make([]float64, 0, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			kx = append(kx, xs[i])
			ky = append(ky, y)
		}
	}
	out := make([]float64, len(at))
	if len(kx) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}

	s, err := NewSpline(kx, ky)
	if err != nil {
		return nil, err
	}
	for i, x := range at {
		out[i] = s.At(x)
	}
	return out, nil
}

func toFloat[I Number](k I) float64 { return float64(k) }

// Linear resamples every column of t onto targets by linear interpolation.
func Linear[I Number, F comparable](t *frame.Table[I, float64, F], targets []I) (*frame.Table[I, float64, F], error) {
	return resample(t, targets, toFloat[I], linear)
}

// Spline resamples every column of t onto targets with a natural cubic
// spline.
func Spline[I Number, F comparable](t *frame.Table[I, float64, F], targets []I) (*frame.Table[I, float64, F], error) {
	return resample(t, targets, toFloat[I], spline)
}

func epochSeconds(ts time.Time) float64 {
	return float64(ts.Unix()) + float64(ts.Nanosecond())/float64(time.Second)
}

// LinearTime is Linear for tables keyed by time.
func LinearTime[F comparable](t *frame.Table[time.Time, float64, F], targets []time.Time) (*frame.Table[time.Time, float64, F], error) {
	return resample(t, targets, epochSeconds, linear)
}

// SplineTime is Spline for tables keyed by time.
func SplineTime[F comparable](t *frame.Table[time.Time, float64, F], targets []time.Time) (*frame.Table[time.Time, float64, F], error) {
	return resample(t, targets, epochSeconds, spline)
}
