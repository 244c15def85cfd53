package frame

import (
	"iter"
	"slices"
)

// Point is one value of a column together with its key.
type Point[I any, T any] struct {
	Index I
	Value T
}

// Column pairs the index with the values of one field. A Column owns its
// slices and is not affected by later changes to the table it came from.
type Column[I any, T any] struct {
	index  []I
	values []T
}

// NewColumn creates a column from parallel slices. Extra elements of the
// longer slice are ignored.
func NewColumn[I any, T any](index []I, values []T) Column[I, T] {
	n := min(len(index), len(values))
	return Column[I, T]{index: index[:n], values: values[:n]}
}

// Len returns the number of points in the column.
func (c Column[I, T]) Len() int {
	return len(c.index)
}

// Index returns the keys of the column. The slice must not be modified.
func (c Column[I, T]) Index() []I {
	return c.index
}

// Values returns the values of the column. The slice must not be modified.
func (c Column[I, T]) Values() []T {
	return c.values
}

// First returns the first point.
func (c Column[I, T]) First() (Point[I, T], bool) {
	if len(c.index) == 0 {
		return Point[I, T]{}, false
	}
	return Point[I, T]{Index: c.index[0], Value: c.values[0]}, true
}

// Last returns the last point.
func (c Column[I, T]) Last() (Point[I, T], bool) {
	n := len(c.index)
	if n == 0 {
		return Point[I, T]{}, false
	}
	return Point[I, T]{Index: c.index[n-1], Value: c.values[n-1]}, true
}

// At returns the value at position i.
func (c Column[I, T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.values) {
		var zero T
		return zero, false
	}
	return c.values[i], true
}

// DropFirst returns the column without its first k points.
func (c Column[I, T]) DropFirst(k int) Column[I, T] {
	k = max(0, min(k, len(c.index)))
	return Column[I, T]{index: c.index[k:], values: c.values[k:]}
}

// All iterates over the points of the column in index order.
func (c Column[I, T]) All() iter.Seq2[I, T] {
	return func(yield func(I, T) bool) {
		for i, key := range c.index {
			if !yield(key, c.values[i]) {
				return
			}
		}
	}
}

// Unique returns the distinct values of the column in order of first
// appearance.
func Unique[I any, T comparable](c Column[I, T]) []T {
	seen := make(map[T]struct{})
	var out []T
	for _, v := range c.values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Len returns the number of complete rows.
func (t *Table[I, T, F]) Len() int {
	return t.rows()
}

// Fields returns the field names in the order they were added.
func (t *Table[I, T, F]) Fields() []F {
	return slices.Clone(t.fields)
}

// Has reports whether the table has field.
func (t *Table[I, T, F]) Has(field F) bool {
	_, ok := t.columns[field]
	return ok
}

// HasAll reports whether the table has every one of fields.
func (t *Table[I, T, F]) HasAll(fields ...F) bool {
	for _, f := range fields {
		if !t.Has(f) {
			return false
		}
	}
	return true
}

// Index returns a copy of the index.
func (t *Table[I, T, F]) Index() []I {
	return slices.Clone(t.keys())
}

// Compare orders two keys the way the table orders its index.
func (t *Table[I, T, F]) Compare(a, b I) int {
	return t.compare(a, b)
}

// Column returns a copy of the column for field.
func (t *Table[I, T, F]) Column(field F) (Column[I, T], bool) {
	values, ok := t.column(field)
	if !ok {
		return Column[I, T]{}, false
	}
	return Column[I, T]{index: slices.Clone(t.keys()), values: slices.Clone(values)}, true
}

// Value returns the value of field at row position pos.
func (t *Table[I, T, F]) Value(field F, pos int) (T, bool) {
	values, ok := t.column(field)
	if !ok || pos < 0 || pos >= len(values) {
		var zero T
		return zero, false
	}
	return values[pos], true
}

// Point returns the key and value of field at row position pos.
func (t *Table[I, T, F]) Point(field F, pos int) (Point[I, T], bool) {
	v, ok := t.Value(field, pos)
	if !ok {
		return Point[I, T]{}, false
	}
	return Point[I, T]{Index: t.index[pos], Value: v}, true
}

// Row returns the values of every field at row position pos.
func (t *Table[I, T, F]) Row(pos int) (map[F]T, bool) {
	if pos < 0 || pos >= t.rows() {
		return nil, false
	}
	row := make(map[F]T, len(t.fields))
	for _, f := range t.fields {
		row[f] = t.columns[f][pos]
	}
	return row, true
}

// First returns the first point of field whose value satisfies match.
// A nil match selects the first row.
func (t *Table[I, T, F]) First(field F, match func(T) bool) (Point[I, T], bool) {
	values, ok := t.column(field)
	if !ok {
		return Point[I, T]{}, false
	}
	for i, v := range values {
		if match == nil || match(v) {
			return Point[I, T]{Index: t.index[i], Value: v}, true
		}
	}
	return Point[I, T]{}, false
}

// Last returns the last point of field whose value satisfies match.
// A nil match selects the last row.
func (t *Table[I, T, F]) Last(field F, match func(T) bool) (Point[I, T], bool) {
	values, ok := t.column(field)
	if !ok {
		return Point[I, T]{}, false
	}
	for i := len(values) - 1; i >= 0; i-- {
		if match == nil || match(values[i]) {
			return Point[I, T]{Index: t.index[i], Value: values[i]}, true
		}
	}
	return Point[I, T]{}, false
}

// All iterates over the rows in index order. Each row is a fresh map.
func (t *Table[I, T, F]) All() iter.Seq2[I, map[F]T] {
	return func(yield func(I, map[F]T) bool) {
		for pos, key := range t.keys() {
			row, _ := t.Row(pos)
			if !yield(key, row) {
				return
			}
		}
	}
}
