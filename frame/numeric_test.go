package frame

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestDropNA(t *testing.T) {
	nan := math.NaN()
	tbl := mustColumns(t, []int{0, 1, 2, 3}, map[string][]float64{
		"a": {1, nan, 3, 4},
		"b": {10, 11, math.Inf(1), 13},
		"c": {nan, nan, nan, nan},
	})

	onlyA := DropNA(tbl, []string{"a"}, false)
	if !slices.Equal(onlyA.Index(), []int{0, 2, 3}) {
		t.Errorf("Expected index [0 2 3], got %v", onlyA.Index())
	}
	if !slices.Equal(onlyA.Fields(), []string{"a"}) {
		t.Errorf("Expected only field a, got %v", onlyA.Fields())
	}

	ab := DropNA(tbl, []string{"a", "b", "missing"}, true)
	if !slices.Equal(ab.Index(), []int{0, 3}) {
		t.Errorf("Expected index [0 3], got %v", ab.Index())
	}
	if len(ab.Fields()) != 3 {
		t.Errorf("Expected all fields kept, got %v", ab.Fields())
	}
	if err := ab.Validate(); err != nil {
		t.Errorf("Expected valid table, got %v", err)
	}

	untouched := DropNA(tbl, []string{"missing"}, false)
	if untouched.Len() != 4 {
		t.Errorf("Expected no rows dropped without fields to check, got %d", untouched.Len())
	}
}

func TestDropNAFloat32(t *testing.T) {
	tbl := New[int, float32]("a")
	tbl.UnsafeAppend([]string{"a"}, []float32{1}, 0)
	tbl.UnsafeAppend([]string{"a"}, []float32{float32(math.NaN())}, 1)

	if got := DropNA(tbl, []string{"a"}, false); got.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", got.Len())
	}
}

func TestCumSum(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3}, map[string][]float64{"a": {1, 2, 3, 4}})

	cum := CumSum(tbl)
	if got := column(t, cum, "a"); !slices.Equal(got, []float64{1, 3, 6, 10}) {
		t.Errorf("Expected [1 3 6 10], got %v", got)
	}
	if got := column(t, tbl, "a"); !slices.Equal(got, []float64{1, 2, 3, 4}) {
		t.Errorf("Expected source unchanged, got %v", got)
	}

	empty := CumSum(New[int, float64]("a"))
	if empty.Len() != 0 || !empty.Has("a") {
		t.Errorf("Expected empty table with field, got %v", empty.Fields())
	}
}

func TestColumnStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	tbl := mustColumns(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, map[string][]float64{"x": values})

	sum, ok := Sum(tbl, "x")
	if !ok || sum != 40 {
		t.Errorf("Expected sum 40, got %f", sum)
	}
	mean, _ := Mean(tbl, "x")
	if math.Abs(mean-5) > 1e-10 {
		t.Errorf("Expected mean 5, got %f", mean)
	}
	variance, _ := Variance(tbl, "x")
	if math.Abs(variance-stat.Variance(values, nil)) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", stat.Variance(values, nil), variance)
	}
	std, _ := StdDev(tbl, "x")
	if math.Abs(std-math.Sqrt(4.571428571428571)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(4.571428571428571), std)
	}
	lo, hi, _ := MinMax(tbl, "x")
	if lo != 2 || hi != 9 {
		t.Errorf("Expected min 2 max 9, got %f %f", lo, hi)
	}

	if _, ok := Sum(tbl, "missing"); ok {
		t.Error("Expected missing field to report false")
	}
}

func TestColumnStatisticsDegenerate(t *testing.T) {
	nan := math.NaN()
	tbl := mustColumns(t, []int{0, 1, 2}, map[string][]float64{
		"withnan": {1, nan, 5},
		"allnan":  {nan, nan, nan},
	})

	if _, ok := Mean(tbl, "withnan"); ok {
		t.Error("Expected mean of column with NaN to report false")
	}
	lo, hi, ok := MinMax(tbl, "withnan")
	if !ok || lo != 1 || hi != 5 {
		t.Errorf("Expected min 1 max 5 ignoring NaN, got %f %f", lo, hi)
	}
	if _, _, ok := MinMax(tbl, "allnan"); ok {
		t.Error("Expected all-NaN column to report false")
	}

	single := mustColumns(t, []int{0}, map[string][]float64{"x": {3}})
	if v, ok := Variance(single, "x"); !ok || v != 0 {
		t.Errorf("Expected variance 0 for single value, got %f", v)
	}
}

func TestMovingAverage(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3, 4}, map[string][]float64{"x": {1, 2, 3, 4, 5}})

	ma, ok := MovingAverage(tbl, "x", 3)
	if !ok {
		t.Fatal("Expected moving average")
	}
	expected := []float64{1, 1.5, 2, 3, 4}
	for i, v := range expected {
		if math.Abs(ma[i]-v) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", v, i, ma[i])
		}
	}

	if _, ok := MovingAverage(tbl, "x", 0); ok {
		t.Error("Expected zero window to report false")
	}
}

func TestMovingAverageNaN(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3, 4}, map[string][]float64{"x": {1, math.NaN(), 1, 1, 1}})

	ma, _ := MovingAverage(tbl, "x", 2)
	if ma[0] != 1 || !math.IsNaN(ma[1]) || !math.IsNaN(ma[2]) {
		t.Errorf("Expected [1 NaN NaN] before the NaN leaves the window, got %v", ma[:3])
	}
	if ma[3] != 1 || ma[4] != 1 {
		t.Errorf("Expected averages to recover once the NaN leaves the window, got %v", ma[3:])
	}
}

func TestDiff(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3, 4}, map[string][]float64{"x": {1, 3, 6, 10, 15}})

	diff := Diff(tbl)
	if !slices.Equal(diff.Index(), []int{1, 2, 3, 4}) {
		t.Errorf("Expected index [1 2 3 4], got %v", diff.Index())
	}
	if got := column(t, diff, "x"); !slices.Equal(got, []float64{2, 3, 4, 5}) {
		t.Errorf("Expected [2 3 4 5], got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2}, map[string][]float64{"x": {1, 2, 3}})

	summary := Describe(tbl)["x"]
	if summary.Count != 3 || summary.Sum != 6 || summary.Min != 1 || summary.Max != 3 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if math.Abs(summary.Mean-2) > 1e-10 || math.Abs(summary.StdDev-1) > 1e-10 {
		t.Errorf("Expected mean 2 std 1, got %f %f", summary.Mean, summary.StdDev)
	}
}

func TestValueChanges(t *testing.T) {
	tbl := mustColumns(t, []int{0, 1, 2, 3, 4}, map[string][]string{
		"mode": {"taxi", "taxi", "climb", "climb", "cruise"},
		"gear": {"down", "down", "down", "up", "up"},
	})

	modes := ValueChanges(tbl, []string{"mode"})
	if !slices.Equal(modes.Index(), []int{0, 2, 4}) {
		t.Errorf("Expected index [0 2 4], got %v", modes.Index())
	}

	both := ValueChanges(tbl, []string{"mode", "gear", "missing"})
	if !slices.Equal(both.Index(), []int{0, 2, 3, 4}) {
		t.Errorf("Expected index [0 2 3 4], got %v", both.Index())
	}
	if !slices.Equal(both.Fields(), []string{"mode", "gear"}) {
		t.Errorf("Expected fields [mode gear], got %v", both.Fields())
	}
}
