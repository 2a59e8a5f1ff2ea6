package analytics

import "math"

// DefaultForecastPeriods is how many future points EstimateTrend projects.
const DefaultForecastPeriods = 3

// EstimateTrend fits a least-squares line over time-indexed values and
// extrapolates periods future points. The error estimate is the mean
// absolute percentage error of a fit trained without the most recent
// max(1, n/5) points, evaluated against them. Requires at least
// MinOutlierSamples points.
func EstimateTrend(col Column, periods int) (TrendEstimate, error) {
	n := len(col.Values)
	if n < MinOutlierSamples {
		return TrendEstimate{}, ErrInsufficientData
	}
	if periods <= 0 {
		periods = DefaultForecastPeriods
	}

	// Held-out error: fit on the head, score on the tail.
	holdout := n / 5
	if holdout < 1 {
		holdout = 1
	}
	trainSlope, trainIntercept := fitLine(col.Values[:n-holdout])

	var mape float64
	var scored int
	for i := n - holdout; i < n; i++ {
		actual := col.Values[i]
		if actual == 0 {
			continue
		}
		predicted := trainIntercept + trainSlope*float64(i)
		mape += math.Abs((actual - predicted) / actual)
		scored++
	}
	if scored > 0 {
		mape = mape / float64(scored) * 100
	}

	// Final model uses every point.
	slope, intercept := fitLine(col.Values)

	est := TrendEstimate{
		Column:    col.Name,
		Slope:     slope,
		Intercept: intercept,
		Forecast:  make([]float64, periods),
		MAPE:      mape,
	}
	for k := 0; k < periods; k++ {
		est.Forecast[k] = intercept + slope*float64(n+k)
	}
	return est, nil
}

// fitLine runs ordinary least squares with x = 0..n-1.
func fitLine(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 0, values[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
