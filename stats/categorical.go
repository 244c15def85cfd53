package stats

import "fmt"

// CategoricalMetric names a value that can be read from CategoricalStats.
type CategoricalMetric string

// Metrics available through CategoricalStats.Value.
const (
	CategoricalStart        CategoricalMetric = "start"
	CategoricalEnd          CategoricalMetric = "end"
	CategoricalMostFrequent CategoricalMetric = "most_frequent"
)

// CategoricalStats tracks the first, last and most frequent value of a
// stream of comparable values.
type CategoricalStats[V comparable] struct {
	start        V
	end          V
	mostFrequent V
	counts       map[V]int
	count        int
}

// NewCategoricalStats starts the statistics with value.
func NewCategoricalStats[V comparable](value V) CategoricalStats[V] {
	return CategoricalStats[V]{
		start:        value,
		end:          value,
		mostFrequent: value,
		counts:       map[V]int{value: 1},
		count:        1,
	}
}

// Update folds value. The most frequent value only changes when another
// value overtakes it, so the first value to reach the top count keeps it.
func (c *CategoricalStats[V]) Update(value V) {
	if c.counts == nil {
		*c = NewCategoricalStats(value)
		return
	}
	c.end = value
	c.count++
	c.counts[value]++
	if c.counts[value] > c.counts[c.mostFrequent] {
		c.mostFrequent = value
	}
}

func (c CategoricalStats[V]) Start() V        { return c.start }
func (c CategoricalStats[V]) End() V          { return c.end }
func (c CategoricalStats[V]) MostFrequent() V { return c.mostFrequent }
func (c CategoricalStats[V]) Count() int      { return c.count }

// Distinct returns the number of different values seen.
func (c CategoricalStats[V]) Distinct() int { return len(c.counts) }

// Frequency returns how many times value was seen.
func (c CategoricalStats[V]) Frequency(value V) int { return c.counts[value] }

// Value returns the named metric. Unknown metrics return the zero value.
func (c CategoricalStats[V]) Value(m CategoricalMetric) V {
	switch m {
	case CategoricalStart:
		return c.start
	case CategoricalEnd:
		return c.end
	case CategoricalMostFrequent:
		return c.mostFrequent
	}
	var zero V
	return zero
}

func (c CategoricalStats[V]) String() string {
	return fmt.Sprintf("CategoricalStats(n=%d distinct=%d most=%v)", c.count, len(c.counts), c.mostFrequent)
}
