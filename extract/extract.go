package extract

import (
	"fmt"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/stats"
)

// Collector builds one accumulator of type C per field and interval.
type Collector[F comparable, T any, C any] interface {
	// Seed creates the accumulator from the first value of an interval.
	Seed(field F, value T) C
	// Fold adds a later value of the same interval.
	Fold(acc *C, value T)
}

// CollectorFuncs adapts a pair of functions to the Collector interface.
type CollectorFuncs[F comparable, T any, C any] struct {
	SeedFunc func(field F, value T) C
	FoldFunc func(acc *C, value T)
}

func (c CollectorFuncs[F, T, C]) Seed(field F, value T) C { return c.SeedFunc(field, value) }
func (c CollectorFuncs[F, T, C]) Fold(acc *C, value T)    { c.FoldFunc(acc, value) }

// Window clips the rows considered by Extract. Both ends are inclusive and
// a nil end is open.
type Window[I any] struct {
	Start *I
	End   *I
}

// cursor walks the boundary list alongside the source rows.
type cursor[I any] struct {
	compare    func(a, b I) int
	boundaries []I
	current    int
	window     Window[I]

	beforeStart bool
	afterEnd    bool
	reachedNext bool
}

func (c *cursor[I]) look(key I) {
	c.beforeStart = c.window.Start != nil && c.compare(key, *c.window.Start) < 0
	c.afterEnd = c.window.End != nil && c.compare(key, *c.window.End) > 0
	c.reachedNext = c.current+1 < len(c.boundaries) && c.compare(key, c.boundaries[c.current+1]) >= 0
}

// advance moves to the last boundary that key has reached.
func (c *cursor[I]) advance(key I) {
	for c.current+1 < len(c.boundaries) && c.compare(key, c.boundaries[c.current+1]) >= 0 {
		c.current++
	}
}

func (c *cursor[I]) key() I {
	return c.boundaries[c.current]
}

func checkBoundaries[I any](compare func(a, b I) int, boundaries []I) error {
	for i := 1; i < len(boundaries); i++ {
		if compare(boundaries[i-1], boundaries[i]) >= 0 {
			return fmt.Errorf("%w: boundary %d does not follow boundary %d", frame.ErrInconsistentIndexOrder, i, i-1)
		}
	}
	return nil
}

// Extract folds the rows of t into one accumulator per field and interval.
// boundaries must be strictly ascending. The result has at most
// len(boundaries) rows.
func Extract[I any, T any, F comparable, C any](t *frame.Table[I, T, F], boundaries []I, collector Collector[F, T, C], window Window[I]) (*frame.Table[I, C, F], error) {
	fields := t.Fields()
	out := frame.NewFunc[I, C, F](t.Compare, fields...)
	if err := checkBoundaries(t.Compare, boundaries); err != nil {
		return nil, err
	}
	if len(boundaries) == 0 || t.Len() == 0 {
		return out, nil
	}

	columns := make([][]T, len(fields))
	for i, f := range fields {
		col, _ := t.Column(f)
		columns[i] = col.Values()
	}

	cur := &cursor[I]{compare: t.Compare, boundaries: boundaries, window: window}
	acc := make([]C, len(fields))
	seeded := false

	flush := func() error {
		if !seeded {
			return nil
		}
		if err := out.AppendNew(fields, acc, cur.key()); err != nil {
			return err
		}
		acc = make([]C, len(fields))
		seeded = false
		return nil
	}

	for pos, key := range t.Index() {
		cur.look(key)
		if cur.beforeStart {
			continue
		}
		if cur.afterEnd {
			break
		}
		if cur.reachedNext {
			if err := flush(); err != nil {
				return nil, err
			}
			cur.advance(key)
		}

		for i, f := range fields {
			v := columns[i][pos]
			if seeded {
				collector.Fold(&acc[i], v)
			} else {
				acc[i] = collector.Seed(f, v)
			}
		}
		seeded = true
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

type valueCollector[F comparable] struct {
	units map[F]stats.Unit
	opts  []stats.Option
}

func (c valueCollector[F]) Seed(field F, value float64) stats.ValueStats {
	return stats.NewValueStats(value, c.options(field)...)
}

func (c valueCollector[F]) Fold(acc *stats.ValueStats, value float64) {
	acc.Update(value)
}

func (c valueCollector[F]) options(field F) []stats.Option {
	unit, ok := c.units[field]
	if !ok {
		return c.opts
	}
	return append(append([]stats.Option(nil), c.opts...), stats.WithUnit(unit))
}

type categoricalCollector[F comparable, T comparable] struct{}

func (categoricalCollector[F, T]) Seed(_ F, value T) stats.CategoricalStats[T] {
	return stats.NewCategoricalStats(value)
}

func (categoricalCollector[F, T]) Fold(acc *stats.CategoricalStats[T], value T) {
	acc.Update(value)
}

// ExtractValueStats computes running statistics per field and interval.
// units tags the statistics of the fields it names; opts apply to every
// field.
func ExtractValueStats[I any, F comparable](t *frame.Table[I, float64, F], boundaries []I, window Window[I], units map[F]stats.Unit, opts ...stats.Option) (*frame.Table[I, stats.ValueStats, F], error) {
	return Extract[I, float64, F, stats.ValueStats](t, boundaries, valueCollector[F]{units: units, opts: opts}, window)
}

// ExtractCategorical computes categorical statistics per field and interval.
func ExtractCategorical[I any, T comparable, F comparable](t *frame.Table[I, T, F], boundaries []I, window Window[I]) (*frame.Table[I, stats.CategoricalStats[T], F], error) {
	return Extract[I, T, F, stats.CategoricalStats[T]](t, boundaries, categoricalCollector[F, T]{}, window)
}
