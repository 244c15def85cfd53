package frame

// Merged returns the union of t and other by index.
//
// Only fields present in both tables are kept. When both tables hold the
// same key the row of t wins. If either table is empty a copy of the other
// is returned unchanged. The sweep visits each complete row once.
func (t *Table[I, T, F]) Merged(other *Table[I, T, F]) *Table[I, T, F] {
	n, m := t.rows(), other.rows()
	if n == 0 {
		return other.span(0, m)
	}
	if m == 0 {
		return t.span(0, n)
	}

	var fields []F
	for _, f := range t.fields {
		if other.Has(f) {
			fields = append(fields, f)
		}
	}
	out := NewFunc[I, T, F](t.compare, fields...)
	out.Reserve(n + m)

	i, j := 0, 0
	for i < n || j < m {
		// run of t up to and including the next key of other
		start := i
		for i < n && (j == m || t.compare(t.index[i], other.index[j]) <= 0) {
			if j < m && t.compare(t.index[i], other.index[j]) == 0 {
				j++
			}
			i++
		}
		out.appendRun(t, start, i)

		// run of other strictly before the next key of t
		start = j
		for j < m && (i == n || t.compare(other.index[j], t.index[i]) < 0) {
			j++
		}
		out.appendRun(other, start, j)
	}
	return out
}

// appendRun copies rows [lo, hi) of src into t for the fields of t.
func (t *Table[I, T, F]) appendRun(src *Table[I, T, F], lo, hi int) {
	if lo >= hi {
		return
	}
	t.index = append(t.index, src.index[lo:hi]...)
	for _, f := range t.fields {
		t.columns[f] = append(t.columns[f], src.columns[f][lo:hi]...)
	}
}
