package frame

import (
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// MapColumns applies fn to every column concurrently, one task per field,
// and assembles the results into a table with the same index. fn must not
// modify values and must return one result per row.
func MapColumns[I any, T any, F comparable, U any](t *Table[I, T, F], fn func(field F, values []T) ([]U, error)) (*Table[I, U, F], error) {
	results, err := fanOut(t, fn)
	if err != nil {
		return nil, err
	}

	out := NewFunc[I, U, F](t.compare, t.fields...)
	out.index = slices.Clone(t.keys())
	for i, f := range t.fields {
		if len(results[i]) != len(out.index) {
			return nil, fmt.Errorf("%w: field %v mapped to %d values for %d keys", ErrInconsistentDataSize, f, len(results[i]), len(out.index))
		}
		out.columns[f] = results[i]
	}
	return out, nil
}

// ReduceColumns applies fn to every column concurrently and collects one
// result per field.
func ReduceColumns[I any, T any, F comparable, R any](t *Table[I, T, F], fn func(field F, values []T) (R, error)) (map[F]R, error) {
	results, err := fanOut(t, fn)
	if err != nil {
		return nil, err
	}
	out := make(map[F]R, len(t.fields))
	for i, f := range t.fields {
		out[f] = results[i]
	}
	return out, nil
}

// fanOut runs fn once per field. Each task writes only its own slot.
func fanOut[I any, T any, F comparable, R any](t *Table[I, T, F], fn func(field F, values []T) (R, error)) ([]R, error) {
	results := make([]R, len(t.fields))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range t.fields {
		values, _ := t.column(f)
		g.Go(func() error {
			r, err := fn(f, values)
			if err != nil {
				return fmt.Errorf("field %v: %w", f, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
