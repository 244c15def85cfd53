package extract

import (
	"fmt"
	"slices"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/stats"
)

// DescribeValues computes running statistics over every column of t, one
// column per goroutine. An empty table gives an empty map.
func DescribeValues[I any, F comparable](t *frame.Table[I, float64, F], units map[F]stats.Unit, opts ...stats.Option) (map[F]stats.ValueStats, error) {
	return describe(t, nil, units, opts)
}

// DescribeWeighted is DescribeValues with every value weighted by the
// matching row of the weight column. The weight column itself is not
// described.
func DescribeWeighted[I any, F comparable](t *frame.Table[I, float64, F], weight F, units map[F]stats.Unit, opts ...stats.Option) (map[F]stats.ValueStats, error) {
	col, ok := t.Column(weight)
	if !ok {
		return nil, fmt.Errorf("weight: %w: %v", frame.ErrUnknownField, weight)
	}
	out, err := describe(t, col.Values(), units, opts)
	if err != nil {
		return nil, err
	}
	delete(out, weight)
	return out, nil
}

func describe[I any, F comparable](t *frame.Table[I, float64, F], weights []float64, units map[F]stats.Unit, opts []stats.Option) (map[F]stats.ValueStats, error) {
	if t.Len() == 0 {
		return map[F]stats.ValueStats{}, nil
	}
	c := valueCollector[F]{units: units, opts: opts}
	return frame.ReduceColumns(t, func(field F, values []float64) (stats.ValueStats, error) {
		weightAt := func(i int) float64 {
			if weights == nil {
				return 1
			}
			return weights[i]
		}
		seedOpts := append(slices.Clone(c.options(field)), stats.WithWeight(weightAt(0)))
		s := stats.NewValueStats(values[0], seedOpts...)
		for i := 1; i < len(values); i++ {
			s.UpdateWeighted(values[i], weightAt(i))
		}
		return s, nil
	})
}

// DescribeCategorical computes categorical statistics over every column
// of t. An empty table gives an empty map.
func DescribeCategorical[I any, T comparable, F comparable](t *frame.Table[I, T, F]) map[F]stats.CategoricalStats[T] {
	out := make(map[F]stats.CategoricalStats[T])
	if t.Len() == 0 {
		return out
	}
	for _, f := range t.Fields() {
		col, _ := t.Column(f)
		values := col.Values()
		s := stats.NewCategoricalStats(values[0])
		for _, v := range values[1:] {
			s.Update(v)
		}
		out[f] = s
	}
	return out
}

// ValueStatsBetween computes running statistics over the rows whose keys
// lie in [from, to]. No rows give an empty map.
func ValueStatsBetween[I any, F comparable](t *frame.Table[I, float64, F], from, to I, units map[F]stats.Unit, opts ...stats.Option) map[F]stats.ValueStats {
	out := make(map[F]stats.ValueStats)
	window := Window[I]{Start: &from, End: &to}
	res, err := ExtractValueStats(t, []I{from}, window, units, opts...)
	if err != nil || res.Len() == 0 {
		return out
	}
	row, _ := res.Row(0)
	for f, s := range row {
		out[f] = s
	}
	return out
}

// ValueStatsBetweenWeighted is ValueStatsBetween with every value weighted
// by the matching row of the weight column, as in DescribeWeighted.
func ValueStatsBetweenWeighted[I any, F comparable](t *frame.Table[I, float64, F], from, to I, weight F, units map[F]stats.Unit, opts ...stats.Option) (map[F]stats.ValueStats, error) {
	index := t.Index()
	hi, _ := slices.BinarySearchFunc(index, to, t.Compare)
	if hi < len(index) && t.Compare(index[hi], to) == 0 {
		hi++
	}
	var end *I
	if hi < len(index) {
		end = &index[hi]
	}
	return DescribeWeighted(t.Sliced(&from, end), weight, units, opts...)
}
