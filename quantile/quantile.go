// Package quantile estimates sample quantiles of table columns.
//
// For n sorted values and a quantile q the fractional rank is
// h = q*(n-1). When h is an integer every method returns the value at that
// rank. Otherwise the method decides between the two bracketing values:
//
//	Linear    sorted[lo] + (h-lo)*(sorted[hi]-sorted[lo])  (R-7, pandas default)
//	Lower     sorted[lo]
//	Higher    sorted[hi]
//	Midpoint  (sorted[lo]+sorted[hi])/2
//
// Usage:
//
//	q := quantile.Quantiles(tbl, []float64{0.25, 0.5, 0.75}, quantile.Linear)
//	median, _ := q.Value("alt", 1)
package quantile

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sartorproj/goframe/frame"
)

// Method selects how a quantile between two order statistics is computed.
type Method int

const (
	Linear Method = iota
	Lower
	Higher
	Midpoint
)

var methodNames = [...]string{"linear", "lower", "higher", "midpoint"}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name such as "linear" or "midpoint".
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown quantile method %q", s)
}

// Of returns the q quantile of values. NaN values are ignored. It reports
// false when q is outside [0, 1] or no value remains.
func Of(values []float64, q float64, m Method) (float64, bool) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return math.NaN(), false
	}
	sorted := sortedClean(values)
	if len(sorted) == 0 {
		return math.NaN(), false
	}
	return at(sorted, q, m), true
}

// Quantiles returns a table indexed by quantile with one column per field
// of t. Quantiles outside [0, 1] are skipped; the rest are sorted and
// de-duplicated. A column with no non-NaN value yields NaN.
func Quantiles[I any, F comparable](t *frame.Table[I, float64, F], qs []float64, m Method) *frame.Table[float64, float64, F] {
	fields := t.Fields()
	out := frame.New[float64, float64](fields...)

	valid := make([]float64, 0, len(qs))
	for _, q := range qs {
		if q >= 0 && q <= 1 {
			valid = append(valid, q)
		}
	}
	slices.Sort(valid)
	valid = slices.Compact(valid)
	if len(valid) == 0 || t.Len() == 0 {
		return out
	}

	sorted := make([][]float64, len(fields))
	for i, f := range fields {
		col, _ := t.Column(f)
		sorted[i] = sortedClean(col.Values())
	}

	row := make([]float64, len(fields))
	for _, q := range valid {
		for i := range fields {
			row[i] = math.NaN()
			if len(sorted[i]) > 0 {
				row[i] = at(sorted[i], q, m)
			}
		}
		out.UnsafeAppend(fields, row, q)
	}
	return out
}

func sortedClean(values []float64) []float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	slices.Sort(sorted)
	return sorted
}

// at evaluates quantile q of a non-empty sorted slice.
func at(sorted []float64, q float64, m Method) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := q * float64(n-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi || hi >= n {
		return sorted[min(lo, n-1)]
	}

	switch m {
	case Lower:
		return sorted[lo]
	case Higher:
		return sorted[hi]
	case Midpoint:
		return (sorted[lo] + sorted[hi]) / 2
	default:
		return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
	}
}
