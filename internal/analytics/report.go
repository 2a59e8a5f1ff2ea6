package analytics

import "fmt"

// Options selects which analyses Analyze runs. The zero value runs
// descriptive statistics, outlier detection, and correlation.
type Options struct {
	Trend           bool
	TrendColumn     string // empty → first numeric column
	ForecastPeriods int
}

// Analyze runs the full analysis suite over a table. It is total: an
// empty table produces a Report whose Notes explain why no numbers were
// computed, never an error.
func Analyze(t Table, opts Options) Report {
	var report Report

	if t.Empty() {
		report.Notes = append(report.Notes, "no numeric data available for analysis")
		return report
	}

	for _, col := range t.Columns {
		stats, err := Describe(col)
		if err != nil {
			report.Notes = append(report.Notes,
				fmt.Sprintf("descriptive statistics skipped for %q: insufficient data", col.Name))
			continue
		}
		report.Columns = append(report.Columns, stats)
	}

	for _, col := range t.Columns {
		outliers, err := DetectOutliers(col)
		if err != nil {
			report.Notes = append(report.Notes,
				fmt.Sprintf("anomaly detection skipped for %q: fewer than %d values", col.Name, MinOutlierSamples))
			continue
		}
		report.Outliers = append(report.Outliers, outliers)
	}

	if len(t.Columns) >= 2 {
		m := Correlate(t)
		report.Correlations = &m
	}

	if opts.Trend {
		col, ok := t.Column(opts.TrendColumn)
		if !ok && opts.TrendColumn == "" && len(t.Columns) > 0 {
			col, ok = t.Columns[0], true
		}
		if !ok {
			report.Notes = append(report.Notes,
				fmt.Sprintf("trend estimation skipped: column %q not found", opts.TrendColumn))
		} else if est, err := EstimateTrend(col, opts.ForecastPeriods); err != nil {
			report.Notes = append(report.Notes,
				fmt.Sprintf("trend estimation skipped for %q: insufficient data", col.Name))
		} else {
			report.Trend = &est
		}
	}

	return report
}
