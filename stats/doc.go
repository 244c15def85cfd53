// Package stats provides running statistics that are folded one value at a
// time.
//
// # Numeric Values
//
// ValueStats accumulates start, end, sum, sum of squares, weighted sum,
// minimum, maximum, count and weight:
//
//	s := stats.NewValueStats(12.5, stats.WithUnit("kt"))
//	s.Update(13.0)
//	s.UpdateWeighted(14.0, 2.0)
//	fmt.Printf("avg=%.2f wavg=%.2f std=%.2f\n",
//	    s.Average(), s.WeightedAverage(), s.StdDev())
//
// A stream that starts with non-finite values re-seeds on the first finite
// value. Later non-finite values are handled by the NaNPolicy:
//
//	// Recoverable (default): non-finite values are skipped
//	s := stats.NewValueStats(1)
//	s.Update(math.NaN())   // ignored
//
//	// Sticky: the first non-finite value poisons the aggregates
//	s := stats.NewValueStats(1, stats.WithPolicy(stats.Sticky))
//	s.Update(math.NaN())   // Sum, Min, Max, End are NaN from now on
//
// The empty state is Invalid(), with a zero count and NaN values.
//
// # Categorical Values
//
// CategoricalStats tracks the first, last and most frequent value of any
// comparable type:
//
//	c := stats.NewCategoricalStats("taxi")
//	c.Update("climb")
//	c.Update("climb")
//	c.MostFrequent() // "climb"
//
// # Units
//
// A Unit is an opaque tag carried with the statistics. It is never used in
// arithmetic.
package stats
