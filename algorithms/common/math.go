package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the population standard deviation.
// Feature aggregation intentionally matches the population convention
// (divide by n, not n-1) so single-frame series yield 0 rather than NaN.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(data)))
}

// Percentile calculates the p-th percentile with linear interpolation
// between closest ranks (p between 0 and 100).
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 100 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	h := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(h))
	upper := int(math.Ceil(h))

	if lower == upper {
		return sorted[lower]
	}

	fraction := h - float64(lower)
	return sorted[lower] + fraction*(sorted[upper]-sorted[lower])
}

// Median returns the 50th percentile
func Median(data []float64) float64 {
	return Percentile(data, 50)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Peak returns the maximum absolute value
func Peak(data []float64) float64 {
	peak := 0.0
	for _, val := range data {
		abs := math.Abs(val)
		if abs > peak {
			peak = abs
		}
	}
	return peak
}

// Clamp restricts value to [min, max]
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
