// Package trend standardizes a raw search-interest series into a z-score.
package trend

import "math"

// ZScore standardizes the most recent point of the series against the
// trailing window (everything before it). The trailing standard deviation
// is the population form. A flat window yields zero rather than a division
// blow-up. Callers guard the minimum series length; with fewer than two
// points there is no window and the result is zero.
func ZScore(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	current := series[len(series)-1]
	window := series[:len(series)-1]

	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(len(window))

	variance := 0.0
	for _, v := range window {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(window)))
	if std == 0 {
		return 0
	}
	z := (current - mean) / std
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0
	}
	return z
}
