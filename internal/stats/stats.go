// Package stats provides the pure return/risk functions used by the metrics
// step: percentage-change series, sample moments, and maximum drawdown.
//
// Edge cases follow a fixed policy rather than IEEE semantics: empty or
// too-short inputs yield 0, never NaN.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PctChanges returns the period-over-period fractional changes of series:
// (v[i] / v[i-1]) - 1 for i in [1, len). A previous value within
// floating-point epsilon of zero produces 0 instead of Inf/NaN. A series of
// length < 2 yields an empty result.
func PctChanges(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	res := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1]
		if math.Abs(prev) < epsilon {
			res = append(res, 0)
		} else {
			res = append(res, series[i]/prev-1)
		}
	}
	return res
}

const epsilon = 2.220446049250313e-16 // IEEE 754 double machine epsilon

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// VarSample returns the Bessel-corrected sample variance of x. Slices of
// length < 2 yield 0.
func VarSample(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}

// StdSample returns the Bessel-corrected sample standard deviation of x, or
// 0 for slices of length < 2.
func StdSample(x []float64) float64 {
	return math.Sqrt(VarSample(x))
}

// MaxDrawdown returns the largest peak-to-trough decline of series as a
// fraction of the peak. Drawdown at each point is (peak-value)/peak while
// the running peak is positive, else 0. An empty series yields 0.
func MaxDrawdown(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	peak := series[0]
	maxDD := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
		var dd float64
		if peak > 0 {
			dd = (peak - v) / peak
		}
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
