package analytics

import (
	"math"
	"sort"
)

// Describe computes descriptive statistics for one column.
// Returns ErrInsufficientData for an empty column.
func Describe(col Column) (ColumnStats, error) {
	n := len(col.Values)
	if n == 0 {
		return ColumnStats{}, ErrInsufficientData
	}

	stats := ColumnStats{
		Name:  col.Name,
		Count: n,
		Min:   col.Values[0],
		Max:   col.Values[0],
	}

	var sum float64
	for _, v := range col.Values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(n)
	stats.Median = median(col.Values)

	if n < 2 {
		return stats, nil
	}

	var m2, m3, m4 float64
	for _, v := range col.Values {
		d := v - stats.Mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	stats.StdDev = math.Sqrt(m2 / float64(n-1))

	// Moment-based skewness and excess kurtosis; both zero when the
	// column has no spread.
	popVar := m2 / float64(n)
	if popVar > 0 {
		stats.Skewness = (m3 / float64(n)) / math.Pow(popVar, 1.5)
		stats.Kurtosis = (m4/float64(n))/(popVar*popVar) - 3
	}

	return stats, nil
}

// median returns the middle value of an unsorted series without mutating it.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
