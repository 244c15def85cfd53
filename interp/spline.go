package interp

import (
	"fmt"
	"slices"
)

// minSpan is the smallest x[i+1]-x[i-1] used as a divisor. Closer knots
// contribute nothing to the second derivatives.
const minSpan = 1e-12

// Spline is a natural cubic spline through a set of knots.
type Spline struct {
	xs []float64
	ys []float64
	y2 []float64
}

// NewSpline fits a natural cubic spline to the knots (xs[i], ys[i]). xs must
// be ascending and at least one knot is required.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("spline: %d x values for %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("spline: no knots")
	}
	s := &Spline{xs: slices.Clone(xs), ys: slices.Clone(ys)}
	s.y2 = secondDerivatives(s.xs, s.ys)
	return s, nil
}

// secondDerivatives solves the tridiagonal system of a natural spline with
// the Thomas algorithm. y2[0] and y2[n-1] are 0.
func secondDerivatives(x, y []float64) []float64 {
	n := len(x)
	y2 := make([]float64, n)
	if n < 3 {
		return y2
	}
	u := make([]float64, n)

	for i := 1; i < n-1; i++ {
		span := x[i+1] - x[i-1]
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]
		if span < minSpan || h0 <= 0 || h1 <= 0 {
			y2[i] = 0
			u[i] = 0
			continue
		}
		sig := h0 / span
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		d := (y[i+1]-y[i])/h1 - (y[i]-y[i-1])/h0
		u[i] = (6*d/span - sig*u[i-1]) / p
	}

	y2[n-1] = 0
	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return y2
}

// SecondDerivatives returns a copy of the second derivative at each knot.
func (s *Spline) SecondDerivatives() []float64 {
	return slices.Clone(s.y2)
}

// At evaluates the spline at x. Outside the knots it returns the value of
// the nearest end knot.
func (s *Spline) At(x float64) float64 {
	n := len(s.xs)
	if x <= s.xs[0] {
		return s.ys[0]
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1]
	}

	// first knot strictly greater than x
	hi, _ := slices.BinarySearch(s.xs, x)
	for hi < n && s.xs[hi] <= x {
		hi++
	}
	lo := hi - 1
	if s.xs[lo] == x {
		return s.ys[lo]
	}

	h := s.xs[hi] - s.xs[lo]
	if h <= 0 {
		return s.ys[lo]
	}
	a := (s.xs[hi] - x) / h
	b := (x - s.xs[lo]) / h
	return a*s.ys[lo] + b*s.ys[hi] +
		((a*a*a-a)*s.y2[lo]+(b*b*b-b)*s.y2[hi])*(h*h)/6
}
