package frame

import (
	"fmt"
	"slices"
)

// span returns a new table holding rows [lo, hi).
func (t *Table[I, T, F]) span(lo, hi int) *Table[I, T, F] {
	out := NewFunc[I, T, F](t.compare, t.fields...)
	out.index = slices.Clone(t.index[lo:hi])
	for _, f := range t.fields {
		out.columns[f] = slices.Clone(t.columns[f][lo:hi])
	}
	return out
}

// pick returns a new table holding the rows at the given ascending positions.
func (t *Table[I, T, F]) pick(positions []int) *Table[I, T, F] {
	out := NewFunc[I, T, F](t.compare, t.fields...)
	out.index = make([]I, len(positions))
	for i, p := range positions {
		out.index[i] = t.index[p]
	}
	for _, f := range t.fields {
		src := t.columns[f]
		col := make([]T, len(positions))
		for i, p := range positions {
			col[i] = src[p]
		}
		out.columns[f] = col
	}
	return out
}

// search returns the position of the first key greater than or equal to key.
func (t *Table[I, T, F]) search(key I) int {
	pos, _ := slices.BinarySearchFunc(t.keys(), key, t.compare)
	return pos
}

// Sliced returns the rows whose keys lie in [start, end). A nil start means
// from the first row and a nil end means through the last row.
func (t *Table[I, T, F]) Sliced(start, end *I) *Table[I, T, F] {
	lo, hi := 0, t.rows()
	if start != nil {
		lo = t.search(*start)
	}
	if end != nil {
		hi = t.search(*end)
	}
	if hi < lo {
		hi = lo
	}
	return t.span(lo, hi)
}

// SliceFrom returns the rows whose keys are greater than or equal to start.
func (t *Table[I, T, F]) SliceFrom(start I) *Table[I, T, F] {
	return t.Sliced(&start, nil)
}

// SliceUntil returns the rows whose keys are strictly less than end.
func (t *Table[I, T, F]) SliceUntil(end I) *Table[I, T, F] {
	return t.Sliced(nil, &end)
}

// ReducedToCommonIndex keeps the rows whose key appears in keys, which must
// be sorted ascending. Fields are kept even when no row survives.
func (t *Table[I, T, F]) ReducedToCommonIndex(keys []I) *Table[I, T, F] {
	var positions []int
	j := 0
	for i, key := range t.keys() {
		for j < len(keys) && t.compare(keys[j], key) < 0 {
			j++
		}
		if j == len(keys) {
			break
		}
		if t.compare(keys[j], key) == 0 {
			positions = append(positions, i)
		}
	}
	return t.pick(positions)
}

// Filter keeps the rows where match holds for the value of field.
func (t *Table[I, T, F]) Filter(field F, match func(T) bool) (*Table[I, T, F], error) {
	values, ok := t.column(field)
	if !ok {
		return nil, unknownField(field)
	}
	var positions []int
	for i, v := range values {
		if match(v) {
			positions = append(positions, i)
		}
	}
	return t.pick(positions), nil
}

// DropFirst drops the leading rows until minimumMatchCount consecutive
// values of field satisfy match, keeping the table from the row that
// completes that run. If no such run exists the result is empty. It returns
// false when the table has no such field.
func (t *Table[I, T, F]) DropFirst(field F, minimumMatchCount int, match func(T) bool) (*Table[I, T, F], bool) {
	values, ok := t.column(field)
	if !ok {
		return nil, false
	}
	minimumMatchCount = max(minimumMatchCount, 1)

	run := 0
	for i, v := range values {
		if match(v) {
			run++
		} else {
			run = 0
		}
		if run >= minimumMatchCount {
			return t.span(i, len(values)), true
		}
	}
	return t.span(0, 0), true
}

// DropLast drops the trailing rows after the last value of field that
// satisfies match. Nothing is dropped when no value matches. It returns false
// when the table has no such field.
func (t *Table[I, T, F]) DropLast(field F, match func(T) bool) (*Table[I, T, F], bool) {
	values, ok := t.column(field)
	if !ok {
		return nil, false
	}
	for i := len(values) - 1; i >= 0; i-- {
		if match(values[i]) {
			return t.span(0, i+1), true
		}
	}
	return t.span(0, len(values)), true
}

// DropBefore drops the rows before key. It returns false when key is not in
// the index.
func (t *Table[I, T, F]) DropBefore(key I) (*Table[I, T, F], bool) {
	keys := t.keys()
	pos, found := slices.BinarySearchFunc(keys, key, t.compare)
	if !found {
		return nil, false
	}
	return t.span(pos, len(keys)), true
}

// Select returns a table restricted to fields, in that order.
func (t *Table[I, T, F]) Select(fields ...F) (*Table[I, T, F], error) {
	out := NewFunc[I, T, F](t.compare)
	out.index = slices.Clone(t.keys())
	for _, f := range fields {
		values, ok := t.column(f)
		if !ok {
			return nil, unknownField(f)
		}
		out.addField(f)
		out.columns[f] = slices.Clone(values)
	}
	return out, nil
}

// Extend returns a copy of the table with a new field dst computed from each
// value of src. An existing dst column is replaced.
func (t *Table[I, T, F]) Extend(src, dst F, fn func(T) T) (*Table[I, T, F], error) {
	values, ok := t.column(src)
	if !ok {
		return nil, unknownField(src)
	}
	col := make([]T, len(values))
	for i, v := range values {
		col[i] = fn(v)
	}
	out := t.span(0, len(values))
	out.addField(dst)
	out.columns[dst] = col
	return out, nil
}

// ExtendMultiple returns a copy of the table with a new field dst computed
// from the values of srcs on each row, passed in the order of srcs.
func (t *Table[I, T, F]) ExtendMultiple(srcs []F, dst F, fn func(values []T) T) (*Table[I, T, F], error) {
	inputs := make([][]T, len(srcs))
	for i, f := range srcs {
		values, ok := t.column(f)
		if !ok {
			return nil, unknownField(f)
		}
		inputs[i] = values
	}
	n := t.rows()
	col := make([]T, n)
	row := make([]T, len(srcs))
	for pos := range n {
		for i, values := range inputs {
			row[i] = values[pos]
		}
		col[pos] = fn(row)
	}
	out := t.span(0, n)
	out.addField(dst)
	out.columns[dst] = col
	return out, nil
}

// AddColumn stores column under field. The column index must equal the
// table index.
func (t *Table[I, T, F]) AddColumn(field F, column Column[I, T]) error {
	keys := t.keys()
	if len(column.index) != len(keys) {
		return fmt.Errorf("%w: column has %d keys, table has %d", ErrInconsistentDataSize, len(column.index), len(keys))
	}
	for i, key := range column.index {
		if t.compare(key, keys[i]) != 0 {
			return fmt.Errorf("%w: column key at row %d differs from table", ErrInconsistentDataSize, i)
		}
	}
	t.addField(field)
	t.columns[field] = slices.Clone(column.values)
	return nil
}
