package frame

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func mustColumns[T any](t *testing.T, index []int, columns map[string][]T) *Table[int, T, string] {
	t.Helper()
	tbl, err := FromColumns(index, columns)
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	return tbl
}

func column[I any, T any, F comparable](t *testing.T, tbl *Table[I, T, F], field F) []T {
	t.Helper()
	col, ok := tbl.Column(field)
	if !ok {
		t.Fatalf("Expected field %v to exist", field)
	}
	return col.Values()
}

func TestNew(t *testing.T) {
	tbl := New[int, float64]("a", "b")

	if tbl.Len() != 0 {
		t.Errorf("Expected empty table, got %d rows", tbl.Len())
	}
	if !slices.Equal(tbl.Fields(), []string{"a", "b"}) {
		t.Errorf("Expected fields [a b], got %v", tbl.Fields())
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("Expected empty table to validate, got %v", err)
	}
}

func TestFromColumns(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3}, map[string][]int{
		"a": {0, 1, 2, 3},
		"b": {10, 11, 12, 13},
	})
	if tbl.Len() != 4 {
		t.Errorf("Expected 4 rows, got %d", tbl.Len())
	}

	tests := []struct {
		name    string
		index   []int
		columns map[string][]int
		want    error
	}{
		{"unsorted", []int{0, 2, 1}, map[string][]int{"a": {1, 2, 3}}, ErrInconsistentIndexOrder},
		{"duplicate", []int{0, 1, 1}, map[string][]int{"a": {1, 2, 3}}, ErrInconsistentIndexOrder},
		{"short column", []int{0, 1, 2}, map[string][]int{"a": {1, 2}}, ErrInconsistentDataSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromColumns(tt.index, tt.columns)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFromColumnsCopiesInput(t *testing.T) {
	index := []int{0, 1}
	values := []int{5, 6}
	tbl := mustColumns(t, index, map[string][]int{"a": values})

	values[0] = 99
	index[0] = -1
	if v, _ := tbl.Value("a", 0); v != 5 {
		t.Errorf("Expected table to own its values, got %d", v)
	}
	if tbl.Index()[0] != 0 {
		t.Errorf("Expected table to own its index, got %d", tbl.Index()[0])
	}
}

func TestFromRows(t *testing.T) {
	index := []int{0, 1, 1, 2, 0, 1, 2}
	rows := [][]int{{1}, {2}, {3}, {4}, {5}, {6}, {7}}

	tbl, err := FromRows(index, []string{"a"}, rows)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// the drop back to key 0 restarts the table
	if !slices.Equal(tbl.Index(), []int{0, 1, 2}) {
		t.Errorf("Expected index [0 1 2], got %v", tbl.Index())
	}
	if got := column(t, tbl, "a"); !slices.Equal(got, []int{5, 6, 7}) {
		t.Errorf("Expected values [5 6 7], got %v", got)
	}

	tbl, err = FromRows([]int{0, 1, 1, 2}, []string{"a"}, [][]int{{1}, {2}, {3}, {4}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := column(t, tbl, "a"); !slices.Equal(got, []int{1, 2, 4}) {
		t.Errorf("Expected repeated key to keep first row, got %v", got)
	}

	_, err = FromRows([]int{0, 1}, []string{"a", "b"}, [][]int{{1, 2}, {3}})
	if !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize for ragged row, got %v", err)
	}
}

func TestAppendFields(t *testing.T) {
	tbl := New[int, float64]("a", "b")

	if err := tbl.AppendFields([]string{"a", "b"}, []float64{1, 10}, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tbl.AppendFields([]string{"a", "b"}, []float64{2, 20}, 5); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := tbl.AppendFields([]string{"a", "b"}, []float64{3, 30}, 4)
	if !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Expected failed append to leave 2 rows, got %d", tbl.Len())
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("Expected table to stay valid, got %v", err)
	}
}

func TestAppendEqualKeyUpdatesRow(t *testing.T) {
	tbl := New[int, float64]("a", "b")

	// assemble the row one field at a time
	if err := tbl.Append("a", 1, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tbl.Append("b", 10, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", tbl.Len())
	}

	// a second value at the same key overwrites
	if err := tbl.Append("a", 2, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := tbl.Value("a", 0); v != 2 {
		t.Errorf("Expected updated value 2, got %f", v)
	}
	if tbl.Len() != 1 {
		t.Errorf("Expected index not to grow, got %d rows", tbl.Len())
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("Expected valid table, got %v", err)
	}
}

func TestAppendRow(t *testing.T) {
	tbl := New[int, int, string]()

	if err := tbl.AppendRow(map[string]int{"a": 1, "b": 2}, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tbl.AppendRow(map[string]int{"a": 3, "b": 4}, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tbl.AppendRow(map[string]int{"b": 5}, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := tbl.Value("b", 1); v != 5 {
		t.Errorf("Expected b=5 after update, got %d", v)
	}

	err := tbl.AppendRow(map[string]int{"a": 1}, 0)
	if !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}
}

func TestAppendInconsistentDataSize(t *testing.T) {
	tbl := New[int, int]("a", "b")
	if err := tbl.AppendFields([]string{"a", "b"}, []int{1, 2}, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// b has no value at key 1 yet, so key 2 cannot start
	if err := tbl.Append("a", 3, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	err := tbl.Append("b", 4, 2)
	if !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize, got %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Expected 1 complete row, got %d", tbl.Len())
	}

	// a new field cannot join after the first row
	err = tbl.Append("c", 1, 1)
	if !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize for late field, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "field c has 0 values, want 1 or 2") {
		t.Errorf("Expected required length in message, got %v", err)
	}

	err = tbl.AppendFields([]string{"a", "a"}, []int{1, 2}, 9)
	if !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize for repeated field, got %v", err)
	}

	err = tbl.AppendFields([]string{"a"}, []int{1, 2}, 9)
	if !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize for mismatched values, got %v", err)
	}
}

func TestAppendNew(t *testing.T) {
	tbl := New[int, int]("a")
	if err := tbl.AppendNew([]string{"a"}, []int{1}, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := tbl.AppendNew([]string{"a"}, []int{2}, 0)
	if !errors.Is(err, ErrDuplicateIndex) {
		t.Errorf("Expected ErrDuplicateIndex, got %v", err)
	}
	if !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected duplicate key to match ErrInconsistentIndexOrder, got %v", err)
	}

	err = tbl.AppendNew([]string{"a"}, []int{2}, -1)
	if !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}

	if v, _ := tbl.Value("a", 0); v != 1 {
		t.Errorf("Expected original value to survive, got %d", v)
	}
}

func TestUnsafeAppendAndValidate(t *testing.T) {
	tbl := New[int, int]("a", "b")
	tbl.Reserve(3)
	tbl.UnsafeAppend([]string{"a", "b"}, []int{1, 2}, 0)
	tbl.UnsafeAppend([]string{"a", "b"}, []int{3, 4}, 1)

	if err := tbl.Validate(); err != nil {
		t.Errorf("Expected valid table, got %v", err)
	}

	tbl.UnsafeAppend([]string{"a", "b"}, []int{5, 6}, 1)
	if err := tbl.Validate(); !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}

	tbl = New[int, int]("a", "b")
	tbl.UnsafeAppend([]string{"a"}, []int{1}, 0)
	if err := tbl.Validate(); !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected ErrInconsistentDataSize, got %v", err)
	}
}

func TestTimeIndexed(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tbl := NewTimeIndexed[float64, string]("hr")

	for i, v := range []float64{120, 125, 130} {
		if err := tbl.Append("hr", v, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if err := tbl.Append("hr", 100, base.Add(-time.Second)); !errors.Is(err, ErrInconsistentIndexOrder) {
		t.Errorf("Expected ErrInconsistentIndexOrder, got %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Len())
	}
}

func TestClearAndClone(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1}, map[string][]int{"a": {1, 2}})
	clone := tbl.Clone()

	tbl.Clear("x")
	if tbl.Len() != 0 || !slices.Equal(tbl.Fields(), []string{"x"}) {
		t.Errorf("Expected cleared table with field x, got %d rows %v", tbl.Len(), tbl.Fields())
	}
	if clone.Len() != 2 {
		t.Errorf("Expected clone to keep 2 rows, got %d", clone.Len())
	}
}

func TestRowInProgress(t *testing.T) {
	tbl := New[int, int]("a", "b")
	if err := tbl.AppendFields([]string{"a", "b"}, []int{1, 10}, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tbl.Append("a", 2, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// readers only see the complete row
	if tbl.Len() != 1 || !slices.Equal(tbl.Index(), []int{0}) {
		t.Errorf("Expected only key 0, got %v", tbl.Index())
	}
	if got := column(t, tbl, "a"); !slices.Equal(got, []int{1}) {
		t.Errorf("Expected column a [1], got %v", got)
	}
	if _, ok := tbl.Value("a", 1); ok {
		t.Error("Expected no value for the incomplete row")
	}
	if _, ok := tbl.Row(1); ok {
		t.Error("Expected no incomplete row")
	}
	if p, _ := tbl.Last("a", nil); p.Index != 0 {
		t.Errorf("Expected last point at 0, got %v", p.Index)
	}
	rows := 0
	for range tbl.All() {
		rows++
	}
	if rows != 1 {
		t.Errorf("Expected 1 row from All, got %d", rows)
	}
	if err := tbl.Validate(); !errors.Is(err, ErrInconsistentDataSize) {
		t.Errorf("Expected Validate to report the incomplete row, got %v", err)
	}

	all := func(int) bool { return true }
	filtered, err := tbl.Filter("a", all)
	if err != nil || filtered.Len() != 1 {
		t.Errorf("Expected 1 filtered row, got %v (%v)", filtered, err)
	}
	if s := tbl.Sliced(nil, nil); s.Len() != 1 || s.Validate() != nil {
		t.Errorf("Expected 1 valid sliced row, got %v", s.Index())
	}
	if d, _ := tbl.DropFirst("a", 1, all); d.Len() != 1 {
		t.Errorf("Expected 1 row after DropFirst, got %d", d.Len())
	}
	if d, _ := tbl.DropLast("a", all); d.Len() != 1 {
		t.Errorf("Expected 1 row after DropLast, got %d", d.Len())
	}
	if d, ok := tbl.DropBefore(0); !ok || d.Len() != 1 {
		t.Errorf("Expected 1 row after DropBefore, got %v", d)
	}
	if _, ok := tbl.DropBefore(1); ok {
		t.Error("Expected the incomplete key to be unknown")
	}
	if sel, err := tbl.Select("b"); err != nil || sel.Len() != 1 || sel.Validate() != nil {
		t.Errorf("Expected 1 valid selected row, got %v (%v)", sel, err)
	}
	if ext, err := tbl.Extend("a", "c", func(v int) int { return v * 2 }); err != nil || ext.Validate() != nil {
		t.Errorf("Expected valid extended table, got %v", err)
	}

	other := mustColumns(t, []int{1, 2}, map[string][]int{"a": {5, 6}, "b": {50, 60}})
	merged := tbl.Merged(other)
	if !slices.Equal(merged.Index(), []int{0, 1, 2}) || merged.Validate() != nil {
		t.Errorf("Expected valid merge over keys [0 1 2], got %v", merged.Index())
	}
	if got := column(t, merged, "a"); !slices.Equal(got, []int{1, 5, 6}) {
		t.Errorf("Expected merged a [1 5 6], got %v", got)
	}
	if back := other.Merged(tbl); back.Validate() != nil || back.Len() != 3 {
		t.Errorf("Expected valid reverse merge, got %v", back.Index())
	}

	mapped, err := MapColumns(tbl, func(_ string, values []int) ([]int, error) { return values, nil })
	if err != nil || mapped.Len() != 1 {
		t.Errorf("Expected 1 mapped row, got %v (%v)", mapped, err)
	}

	// completing the row makes it visible
	if err := tbl.Append("b", 20, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Len() != 2 || tbl.Validate() != nil {
		t.Errorf("Expected 2 valid rows, got %v", tbl.Index())
	}
	if filtered, _ := tbl.Filter("a", all); filtered.Len() != 2 {
		t.Errorf("Expected 2 filtered rows, got %d", filtered.Len())
	}
}
