package stats

import (
	"fmt"
	"math"
	"strings"
)

// Unit is an opaque unit tag such as "kt" or "ft".
type Unit string

// NaNPolicy selects how ValueStats treats a non-finite value once a finite
// value has been seen.
type NaNPolicy int

const (
	// Recoverable skips non-finite values.
	Recoverable NaNPolicy = iota
	// Sticky lets the first non-finite value poison every aggregate. The
	// count and weight keep advancing.
	Sticky
)

func (p NaNPolicy) String() string {
	switch p {
	case Recoverable:
		return "recoverable"
	case Sticky:
		return "sticky"
	}
	return fmt.Sprintf("NaNPolicy(%d)", int(p))
}

// ParsePolicy parses "recoverable" or "sticky".
func ParsePolicy(s string) (NaNPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recoverable", "":
		return Recoverable, nil
	case "sticky":
		return Sticky, nil
	}
	return Recoverable, fmt.Errorf("unknown NaN policy %q", s)
}

// Metric names a scalar that can be read from ValueStats.
type Metric string

// Metrics available through ValueStats.Value.
const (
	Start   Metric = "start"
	End     Metric = "end"
	Min     Metric = "min"
	Max     Metric = "max"
	Average Metric = "average"
	Total   Metric = "total"
	Range   Metric = "range"
)

// Metrics lists every Metric in display order.
var Metrics = []Metric{Start, End, Min, Max, Average, Total, Range}

// ParseMetric parses a metric name.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// ValueStats holds running statistics of a stream of float64 values.
// The zero value is not useful; use NewValueStats or Invalid.
type ValueStats struct {
	start       float64
	end         float64
	sum         float64
	sumSquare   float64
	weightedSum float64
	max         float64
	min         float64
	count       int
	weight      float64

	unit     Unit
	policy   NaNPolicy
	poisoned bool
}

// Option configures a ValueStats created by NewValueStats.
type Option func(*config)

type config struct {
	weight float64
	unit   Unit
	policy NaNPolicy
}

// WithWeight sets the weight of the first value (default 1).
func WithWeight(w float64) Option {
	return func(c *config) { c.weight = w }
}

// WithUnit attaches a unit tag.
func WithUnit(u Unit) Option {
	return func(c *config) { c.unit = u }
}

// WithPolicy sets the NaN policy (default Recoverable).
func WithPolicy(p NaNPolicy) Option {
	return func(c *config) { c.policy = p }
}

// NewValueStats starts the statistics with value. The count is 1 when value
// is finite and 0 otherwise.
func NewValueStats(value float64, opts ...Option) ValueStats {
	c := config{weight: 1}
	for _, opt := range opts {
		opt(&c)
	}
	s := ValueStats{unit: c.unit, policy: c.policy}
	s.seed(value, c.weight)
	return s
}

// Invalid returns the empty statistics: zero count and NaN values.
func Invalid() ValueStats {
	return NewValueStats(math.NaN())
}

func (s *ValueStats) seed(value, weight float64) {
	s.start = value
	s.end = value
	s.sum = value
	s.sumSquare = value * value
	s.max = value
	s.min = value
	s.weight = weight
	s.weightedSum = value * weight
	s.count = 0
	if isFinite(value) {
		s.count = 1
	}
	s.poisoned = false
}

func (s *ValueStats) poison() {
	s.poisoned = true
	s.end = math.NaN()
	s.sum = math.NaN()
	s.sumSquare = math.NaN()
	s.weightedSum = math.NaN()
	s.max = math.NaN()
	s.min = math.NaN()
}

// Update folds value with weight 1.
func (s *ValueStats) Update(value float64) {
	s.UpdateWeighted(value, 1)
}

// UpdateWeighted folds value with the given weight.
func (s *ValueStats) UpdateWeighted(value, weight float64) {
	finite := isFinite(value)

	if s.count == 0 {
		if finite {
			s.seed(value, weight)
		}
		return
	}

	if !finite {
		if s.policy == Recoverable {
			return
		}
		s.poison()
	}
	if s.poisoned {
		s.count++
		s.weight += weight
		return
	}

	s.end = value
	s.sum += value
	s.sumSquare += value * value
	s.weightedSum += value * weight
	s.max = math.Max(s.max, value)
	s.min = math.Min(s.min, value)
	s.count++
	s.weight += weight
}

// Merge folds other into s as if its values had been seen after those of s.
// A poisoned other poisons s whatever its policy.
func (s *ValueStats) Merge(other ValueStats) {
	if other.count == 0 {
		return
	}
	if s.count == 0 {
		unit, policy := s.unit, s.policy
		*s = other
		if unit != "" {
			s.unit = unit
		}
		s.policy = policy
		return
	}

	s.count += other.count
	s.weight += other.weight
	if other.poisoned {
		s.poison()
	}
	if s.poisoned {
		return
	}
	s.end = other.end
	s.sum += other.sum
	s.sumSquare += other.sumSquare
	s.weightedSum += other.weightedSum
	s.max = math.Max(s.max, other.max)
	s.min = math.Min(s.min, other.min)
}

// IsValid reports whether at least one finite value was folded.
func (s ValueStats) IsValid() bool { return s.count != 0 }

// Poisoned reports whether a Sticky policy has seen a non-finite value.
func (s ValueStats) Poisoned() bool { return s.poisoned }

func (s ValueStats) Start() float64       { return s.start }
func (s ValueStats) End() float64         { return s.end }
func (s ValueStats) Sum() float64         { return s.sum }
func (s ValueStats) SumSquare() float64   { return s.sumSquare }
func (s ValueStats) WeightedSum() float64 { return s.weightedSum }
func (s ValueStats) Max() float64         { return s.max }
func (s ValueStats) Min() float64         { return s.min }
func (s ValueStats) Count() int           { return s.count }
func (s ValueStats) Weight() float64      { return s.weight }
func (s ValueStats) Unit() Unit           { return s.unit }
func (s ValueStats) Policy() NaNPolicy    { return s.policy }

// Average returns sum/count, or NaN for no values.
func (s ValueStats) Average() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// WeightedAverage returns weightedSum/weight, or NaN for zero weight.
func (s ValueStats) WeightedAverage() float64 {
	if s.count == 0 || s.weight == 0 {
		return math.NaN()
	}
	return s.weightedSum / s.weight
}

// Variance returns the sample variance. It is NaN for fewer than two values.
func (s ValueStats) Variance() float64 {
	if s.count < 2 {
		return math.NaN()
	}
	n := float64(s.count)
	v := (n*s.sumSquare - s.sum*s.sum) / (n * (n - 1))
	if v < 0 {
		// rounding
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation. It is NaN for fewer than
// two values.
func (s ValueStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Total returns end - start.
func (s ValueStats) Total() float64 { return s.end - s.start }

// Range returns max - min.
func (s ValueStats) Range() float64 { return s.max - s.min }

// Value returns the named metric, or NaN for an unknown one.
func (s ValueStats) Value(m Metric) float64 {
	switch m {
	case Start:
		return s.start
	case End:
		return s.end
	case Min:
		return s.min
	case Max:
		return s.max
	case Average:
		return s.Average()
	case Total:
		return s.Total()
	case Range:
		return s.Range()
	}
	return math.NaN()
}

func (s ValueStats) String() string {
	if !s.IsValid() {
		return "ValueStats(invalid)"
	}
	unit := ""
	if s.unit != "" {
		unit = " " + string(s.unit)
	}
	return fmt.Sprintf("ValueStats(n=%d avg=%g min=%g max=%g%s)", s.count, s.Average(), s.min, s.max, unit)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
