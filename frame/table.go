// Package frame provides core column store data structures and operations.
package frame

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Table is a column store keyed by a strictly increasing index.
// I is the index key type, T the value type and F the field name type.
type Table[I any, T any, F comparable] struct {
	compare func(a, b I) int
	index   []I
	fields  []F
	columns map[F][]T
}

// New creates an empty table with the given fields, ordered by cmp.Compare.
func New[I cmp.Ordered, T any, F comparable](fields ...F) *Table[I, T, F] {
	return NewFunc[I, T, F](cmp.Compare[I], fields...)
}

// NewFunc creates an empty table whose keys are ordered by compare.
func NewFunc[I any, T any, F comparable](compare func(a, b I) int, fields ...F) *Table[I, T, F] {
	t := &Table[I, T, F]{
		compare: compare,
		columns: make(map[F][]T, len(fields)),
	}
	for _, f := range fields {
		t.addField(f)
	}
	return t
}

// NewTimeIndexed creates an empty table keyed by time.
func NewTimeIndexed[T any, F comparable](fields ...F) *Table[time.Time, T, F] {
	return NewFunc[time.Time, T, F](time.Time.Compare, fields...)
}

// FromColumns creates a table from an index and per-field columns.
// The slices are copied. Both table invariants are checked.
func FromColumns[I cmp.Ordered, T any, F comparable](index []I, columns map[F][]T) (*Table[I, T, F], error) {
	return FromColumnsFunc(cmp.Compare[I], index, columns)
}

// FromColumnsFunc is FromColumns with an explicit key comparison.
func FromColumnsFunc[I any, T any, F comparable](compare func(a, b I) int, index []I, columns map[F][]T) (*Table[I, T, F], error) {
	t := NewFunc[I, T, F](compare)
	t.index = slices.Clone(index)
	for f, values := range columns {
		t.addField(f)
		t.columns[f] = slices.Clone(values)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// FromRows creates a table from parallel index and row slices, each row
// holding one value per field.
//
// It is meant for raw device logs: a key lower than the previous one
// restarts the table from that row, and a repeated key keeps the first row.
func FromRows[I cmp.Ordered, T any, F comparable](index []I, fields []F, rows [][]T) (*Table[I, T, F], error) {
	return FromRowsFunc(cmp.Compare[I], index, fields, rows)
}

// FromRowsFunc is FromRows with an explicit key comparison.
func FromRowsFunc[I any, T any, F comparable](compare func(a, b I) int, index []I, fields []F, rows [][]T) (*Table[I, T, F], error) {
	if len(index) != len(rows) {
		return nil, fmt.Errorf("%w: %d keys for %d rows", ErrInconsistentDataSize, len(index), len(rows))
	}
	t := NewFunc[I, T, F](compare, fields...)
	t.Reserve(len(index))

	for r, key := range index {
		row := rows[r]
		if len(row) != len(fields) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d fields", ErrInconsistentDataSize, r, len(row), len(fields))
		}
		if n := len(t.index); n > 0 {
			c := compare(key, t.index[n-1])
			if c < 0 {
				t.truncate()
			} else if c == 0 {
				continue
			}
		}
		t.UnsafeAppend(fields, row, key)
	}
	return t, nil
}

// rows returns the number of complete rows, those every column has a value
// for. Only the last row can be incomplete, while AppendFields fills it one
// field at a time; readers never see it.
func (t *Table[I, T, F]) rows() int {
	n := len(t.index)
	for _, f := range t.fields {
		n = min(n, len(t.columns[f]))
	}
	return n
}

// keys returns the index of the complete rows.
func (t *Table[I, T, F]) keys() []I {
	return t.index[:t.rows()]
}

// column returns the values of field over the complete rows.
func (t *Table[I, T, F]) column(field F) ([]T, bool) {
	values, ok := t.columns[field]
	if !ok {
		return nil, false
	}
	return values[:t.rows()], true
}

func (t *Table[I, T, F]) addField(f F) {
	if _, ok := t.columns[f]; ok {
		return
	}
	t.fields = append(t.fields, f)
	t.columns[f] = []T{}
}

// truncate empties the index and every column, keeping capacity.
func (t *Table[I, T, F]) truncate() {
	t.index = t.index[:0]
	for _, f := range t.fields {
		t.columns[f] = t.columns[f][:0]
	}
}

// Reserve grows the capacity of the index and every column to hold n rows.
func (t *Table[I, T, F]) Reserve(n int) {
	if extra := n - len(t.index); extra > 0 {
		t.index = slices.Grow(t.index, extra)
	}
	for _, f := range t.fields {
		if col := t.columns[f]; n > len(col) {
			t.columns[f] = slices.Grow(col, n-len(col))
		}
	}
}

// Clear removes every row and field, then registers fields.
func (t *Table[I, T, F]) Clear(fields ...F) {
	t.index = nil
	t.fields = nil
	t.columns = make(map[F][]T, len(fields))
	for _, f := range fields {
		t.addField(f)
	}
}

// Clone returns a deep copy of the table.
func (t *Table[I, T, F]) Clone() *Table[I, T, F] {
	out := NewFunc[I, T, F](t.compare, t.fields...)
	out.index = slices.Clone(t.index)
	for _, f := range t.fields {
		out.columns[f] = slices.Clone(t.columns[f])
	}
	return out
}

// Validate checks that the index is strictly increasing and that every
// column has one value per key. Call it after a run of UnsafeAppend.
func (t *Table[I, T, F]) Validate() error {
	for i := 1; i < len(t.index); i++ {
		if t.compare(t.index[i-1], t.index[i]) >= 0 {
			return fmt.Errorf("%w: key at row %d does not follow row %d", ErrInconsistentIndexOrder, i, i-1)
		}
	}
	for _, f := range t.fields {
		if n := len(t.columns[f]); n != len(t.index) {
			return fmt.Errorf("%w: field %v has %d values for %d keys", ErrInconsistentDataSize, f, n, len(t.index))
		}
	}
	return nil
}

// opensRow reports whether key starts a new row. A key equal to the last
// key addresses the last row; a lower key is an error.
func (t *Table[I, T, F]) opensRow(key I) (bool, error) {
	n := len(t.index)
	if n == 0 {
		return true, nil
	}
	switch c := t.compare(key, t.index[n-1]); {
	case c > 0:
		return true, nil
	case c == 0:
		return false, nil
	default:
		return false, fmt.Errorf("%w: key precedes last key at row %d", ErrInconsistentIndexOrder, n-1)
	}
}

// Append adds value for field at key. See AppendFields.
func (t *Table[I, T, F]) Append(field F, value T, at I) error {
	return t.AppendFields([]F{field}, []T{value}, at)
}

// AppendRow adds the values of row at key. See AppendFields.
func (t *Table[I, T, F]) AppendRow(row map[F]T, at I) error {
	fields := make([]F, 0, len(row))
	values := make([]T, 0, len(row))
	for _, f := range t.fields {
		if v, ok := row[f]; ok {
			fields = append(fields, f)
			values = append(values, v)
		}
	}
	for f, v := range row {
		if _, ok := t.columns[f]; !ok {
			fields = append(fields, f)
			values = append(values, v)
		}
	}
	return t.AppendFields(fields, values, at)
}

// AppendFields adds one value per field at key.
//
// A key greater than the last key starts a new row. A key equal to the last
// key updates that row: a field still missing its value for the row is
// appended and a field that already has one is overwritten. A lower key
// fails with ErrInconsistentIndexOrder. A field whose column would not line
// up with the index fails with ErrInconsistentDataSize, and so does a new key
// while the last row still misses a field. Until every field of the last row
// is set, readers see the table without that row. The table is left
// unchanged on error.
func (t *Table[I, T, F]) AppendFields(fields []F, values []T, at I) error {
	if len(fields) != len(values) {
		return fmt.Errorf("%w: %d fields for %d values", ErrInconsistentDataSize, len(fields), len(values))
	}
	newRow, err := t.opensRow(at)
	if err != nil {
		return err
	}
	rows := len(t.index)
	if newRow {
		for _, f := range t.fields {
			if len(t.columns[f]) != rows {
				return fmt.Errorf("%w: row %d has no value for field %v", ErrInconsistentDataSize, rows-1, f)
			}
		}
		rows++
	}
	for i, f := range fields {
		if slices.Contains(fields[:i], f) {
			return fmt.Errorf("%w: field %v given twice", ErrInconsistentDataSize, f)
		}
		n := len(t.columns[f])
		switch {
		case n == rows-1, !newRow && n == rows:
		case newRow:
			return fmt.Errorf("%w: field %v has %d values, want %d", ErrInconsistentDataSize, f, n, rows-1)
		default:
			return fmt.Errorf("%w: field %v has %d values, want %d or %d", ErrInconsistentDataSize, f, n, rows-1, rows)
		}
	}

	if newRow {
		t.index = append(t.index, at)
	}
	for i, f := range fields {
		t.addField(f)
		col := t.columns[f]
		if len(col) == rows {
			col[rows-1] = values[i]
		} else {
			col = append(col, values[i])
		}
		t.columns[f] = col
	}
	return nil
}

// AppendNew is AppendFields for callers that never revisit a row: a key
// equal to the last key fails with ErrDuplicateIndex.
func (t *Table[I, T, F]) AppendNew(fields []F, values []T, at I) error {
	if n := len(t.index); n > 0 && t.compare(at, t.index[n-1]) == 0 {
		return fmt.Errorf("%w at row %d", ErrDuplicateIndex, n-1)
	}
	return t.AppendFields(fields, values, at)
}

// UnsafeAppend adds a row without checking key order or column sizes.
// The caller owns both invariants and should call Validate afterwards.
func (t *Table[I, T, F]) UnsafeAppend(fields []F, values []T, at I) {
	t.index = append(t.index, at)
	for i, f := range fields {
		if i >= len(values) {
			break
		}
		t.addField(f)
		t.columns[f] = append(t.columns[f], values[i])
	}
}
