package stats

import (
	"math"
	"testing"
)

func TestPctChangesConstantSeries(t *testing.T) {
	got := PctChanges([]float64{5, 5, 5, 5})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("got[%d] = %v, want 0", i, v)
		}
	}
}

func TestPctChanges(t *testing.T) {
	got := PctChanges([]float64{100, 110, 99})
	want := []float64{0.1, -0.1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPctChangesZeroPrevious(t *testing.T) {
	got := PctChanges([]float64{0, 10})
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("got %v, want [0]", got)
	}
	if math.IsInf(got[0], 0) || math.IsNaN(got[0]) {
		t.Errorf("got[0] = %v, want finite 0", got[0])
	}
}

func TestPctChangesShortSeries(t *testing.T) {
	if got := PctChanges([]float64{42}); len(got) != 0 {
		t.Errorf("single-element series produced %v, want empty", got)
	}
	if got := PctChanges(nil); len(got) != 0 {
		t.Errorf("nil series produced %v, want empty", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean of empty = %v, want 0", got)
	}
}

func TestStdSampleEdgeCases(t *testing.T) {
	// Deliberate policy: length < 2 yields 0, not NaN.
	if got := StdSample(nil); got != 0 {
		t.Errorf("StdSample(empty) = %v, want 0", got)
	}
	if got := StdSample([]float64{7}); got != 0 {
		t.Errorf("StdSample(single) = %v, want 0", got)
	}
}

func TestVarSample(t *testing.T) {
	// Sample variance of [2,4,4,4,5,5,7,9] is 32/7.
	got := VarSample([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := 32.0 / 7.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("VarSample = %v, want %v", got, want)
	}
}

func TestMaxDrawdownMonotonic(t *testing.T) {
	if got := MaxDrawdown([]float64{1, 2, 2, 3, 10}); got != 0 {
		t.Errorf("MaxDrawdown of non-decreasing series = %v, want 0", got)
	}
}

func TestMaxDrawdownHalf(t *testing.T) {
	if got := MaxDrawdown([]float64{100, 50}); got != 0.5 {
		t.Errorf("MaxDrawdown([100,50]) = %v, want 0.5", got)
	}
}

func TestMaxDrawdownRecovers(t *testing.T) {
	// Peak 100 → trough 60 → recovery; drawdown is measured at the trough.
	got := MaxDrawdown([]float64{100, 80, 60, 90, 120})
	if math.Abs(got-0.4) > 1e-12 {
		t.Errorf("MaxDrawdown = %v, want 0.4", got)
	}
}

func TestMaxDrawdownEmptyAndNonPositive(t *testing.T) {
	if got := MaxDrawdown(nil); got != 0 {
		t.Errorf("MaxDrawdown(empty) = %v, want 0", got)
	}
	if got := MaxDrawdown([]float64{-5, -10, -1}); got != 0 {
		t.Errorf("MaxDrawdown of non-positive-peak series = %v, want 0", got)
	}
}
