package analytics

import "sort"

// MinOutlierSamples is the smallest column size the IQR method accepts.
// Below this, quartiles are too unstable to produce a meaningful bound.
const MinOutlierSamples = 4

const iqrFence = 1.5

// DetectOutliers flags values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
// Columns with fewer than MinOutlierSamples values return
// ErrInsufficientData.
func DetectOutliers(col Column) (OutlierReport, error) {
	n := len(col.Values)
	if n < MinOutlierSamples {
		return OutlierReport{}, ErrInsufficientData
	}

	q1, q3 := quartiles(col.Values)
	iqr := q3 - q1

	report := OutlierReport{
		Column: col.Name,
		Lower:  q1 - iqrFence*iqr,
		Upper:  q3 + iqrFence*iqr,
	}

	for i, v := range col.Values {
		if v < report.Lower || v > report.Upper {
			report.Indices = append(report.Indices, i)
		}
	}
	report.Count = len(report.Indices)
	report.Percentage = float64(report.Count) / float64(n) * 100

	return report, nil
}

// quartiles computes Q1/Q3 by the Tukey median-of-halves method: the
// series is split around its median (which is excluded from both halves
// when n is odd) and each half's median is taken.
func quartiles(values []float64) (q1, q3 float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	half := n / 2

	lower := sorted[:half]
	var upper []float64
	if n%2 == 0 {
		upper = sorted[half:]
	} else {
		upper = sorted[half+1:]
	}

	return median(lower), median(upper)
}
