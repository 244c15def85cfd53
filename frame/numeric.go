package frame

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func finite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DropNA removes the rows where any of fields holds a NaN or infinite value.
// Fields the table does not have are ignored. The result keeps only fields,
// or every field of t when includeAllFields is set.
func DropNA[I any, T constraints.Float, F comparable](t *Table[I, T, F], fields []F, includeAllFields bool) *Table[I, T, F] {
	var check []F
	for _, f := range fields {
		if t.Has(f) {
			check = append(check, f)
		}
	}
	output := check
	if includeAllFields {
		output = t.fields
	}
	keys := t.keys()
	if len(output) == 0 {
		return t.span(0, len(keys))
	}

	out := NewFunc[I, T, F](t.compare, output...)
	out.Reserve(len(keys))
	row := make([]T, len(output))
	for pos, key := range keys {
		valid := true
		for _, f := range check {
			if !finite(t.columns[f][pos]) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		for i, f := range output {
			row[i] = t.columns[f][pos]
		}
		out.UnsafeAppend(output, row, key)
	}
	return out
}

// CumSum returns the running sum of every column.
func CumSum[I any, F comparable](t *Table[I, float64, F]) *Table[I, float64, F] {
	out := t.span(0, t.rows())
	for _, f := range out.fields {
		col := out.columns[f]
		if len(col) > 0 {
			floats.CumSum(col, col)
		}
	}
	return out
}

// Sum returns the sum of field.
func Sum[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	values, ok := t.column(field)
	if !ok {
		return 0, false
	}
	return floats.Sum(values), true
}

// Mean returns the mean of field. It reports false for an empty column or
// one holding NaN.
func Mean[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	values, ok := t.column(field)
	if !ok || len(values) == 0 || floats.HasNaN(values) {
		return math.NaN(), false
	}
	return stat.Mean(values, nil), true
}

// Variance returns the sample variance of field. A single value has zero
// variance.
func Variance[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	values, ok := t.column(field)
	if !ok || len(values) == 0 || floats.HasNaN(values) {
		return math.NaN(), false
	}
	if len(values) == 1 {
		return 0, true
	}
	return stat.Variance(values, nil), true
}

// StdDev returns the sample standard deviation of field.
func StdDev[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	v, ok := Variance(t, field)
	if !ok {
		return math.NaN(), false
	}
	return math.Sqrt(v), true
}

// Min returns the smallest non-NaN value of field.
func Min[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	lo, _, ok := MinMax(t, field)
	return lo, ok
}

// Max returns the largest non-NaN value of field.
func Max[I any, F comparable](t *Table[I, float64, F], field F) (float64, bool) {
	_, hi, ok := MinMax(t, field)
	return hi, ok
}

// MinMax returns the smallest and largest non-NaN values of field.
func MinMax[I any, F comparable](t *Table[I, float64, F], field F) (float64, float64, bool) {
	values, ok := t.column(field)
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	if floats.HasNaN(values) {
		clean := make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) {
				clean = append(clean, v)
			}
		}
		values = clean
	}
	if len(values) == 0 {
		return math.NaN(), math.NaN(), false
	}
	return floats.Min(values), floats.Max(values), true
}

// MovingAverage returns the trailing moving average of field over window
// rows. The first window-1 averages use the rows available so far. A NaN
// only affects the averages of the windows that contain it.
func MovingAverage[I any, F comparable](t *Table[I, float64, F], field F, window int) ([]float64, bool) {
	values, ok := t.column(field)
	if !ok || window <= 0 {
		return nil, false
	}
	result := make([]float64, len(values))
	for i := range values {
		w := values[max(0, i-window+1) : i+1]
		result[i] = floats.Sum(w) / float64(len(w))
	}
	return result, true
}

// Diff returns the first difference of every column. The result is keyed
// by the later key of each pair and has one row fewer than t.
func Diff[I any, F comparable](t *Table[I, float64, F]) *Table[I, float64, F] {
	n := t.rows()
	if n < 2 {
		return t.span(0, 0)
	}
	out := t.span(1, n)
	for _, f := range t.fields {
		src := t.columns[f]
		col := out.columns[f]
		for i := range col {
			col[i] = src[i+1] - src[i]
		}
	}
	return out
}

// Summary holds the column statistics reported by Describe. Statistics that
// cannot be computed are NaN.
type Summary struct {
	Count  int
	Sum    float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Describe summarizes every column of t.
func Describe[I any, F comparable](t *Table[I, float64, F]) map[F]Summary {
	out := make(map[F]Summary, len(t.fields))
	for _, f := range t.fields {
		values, _ := t.column(f)
		s := Summary{Count: len(values)}
		s.Sum, _ = Sum(t, f)
		s.Mean, _ = Mean(t, f)
		s.StdDev, _ = StdDev(t, f)
		s.Min, s.Max, _ = MinMax(t, f)
		out[f] = s
	}
	return out
}

// ValueChanges keeps the first row and every row where at least one of
// fields differs from the previous row. Fields the table does not have are
// ignored; the result holds only the remaining fields.
func ValueChanges[I any, T comparable, F comparable](t *Table[I, T, F], fields []F) *Table[I, T, F] {
	var selected []F
	for _, f := range fields {
		if t.Has(f) {
			selected = append(selected, f)
		}
	}
	out := NewFunc[I, T, F](t.compare, selected...)
	if len(selected) == 0 {
		return out
	}

	row := make([]T, len(selected))
	for pos, key := range t.keys() {
		changed := pos == 0
		for i, f := range selected {
			v := t.columns[f][pos]
			if pos > 0 && v != t.columns[f][pos-1] {
				changed = true
			}
			row[i] = v
		}
		if changed {
			out.UnsafeAppend(selected, row, key)
		}
	}
	return out
}
