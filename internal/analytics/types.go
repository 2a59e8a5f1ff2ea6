package analytics

import "errors"

// ErrInsufficientData is returned when an input does not carry enough
// values for the requested computation.
var ErrInsufficientData = errors.New("insufficient data")

// Column is a named numeric series.
type Column struct {
	Name   string
	Values []float64
}

// Table is the tabular input to every analysis function. Columns keep
// their ingestion order so results are deterministic.
type Table struct {
	Columns []Column
}

// Column returns the named column, if present.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Empty reports whether the table carries no values at all.
func (t Table) Empty() bool {
	for _, c := range t.Columns {
		if len(c.Values) > 0 {
			return false
		}
	}
	return true
}

// FromRecords builds a Table from generic rows, keeping only columns whose
// values are numeric in every non-missing row. Non-numeric columns are
// skipped, not errored.
func FromRecords(headers []string, rows []map[string]any) Table {
	var t Table
	for _, h := range headers {
		values := make([]float64, 0, len(rows))
		numeric := true
		for _, row := range rows {
			v, ok := row[h]
			if !ok || v == nil {
				continue
			}
			f, ok := toFloat(v)
			if !ok {
				numeric = false
				break
			}
			values = append(values, f)
		}
		if numeric && len(values) > 0 {
			t.Columns = append(t.Columns, Column{Name: h, Values: values})
		}
	}
	return t
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ColumnStats holds descriptive statistics for one column.
type ColumnStats struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// OutlierReport is the IQR outlier detection result for one column.
type OutlierReport struct {
	Column     string  `json:"column"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Indices    []int   `json:"indices"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CorrelationMatrix is a symmetric pairwise Pearson matrix. Undefined
// correlations (zero-variance columns) are nil cells, marshalled as null.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Cells   [][]*float64 `json:"cells"`
}

// TrendEstimate is a linear extrapolation with an explicit error metric.
type TrendEstimate struct {
	Column    string    `json:"column"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Forecast  []float64 `json:"forecast"`
	MAPE      float64   `json:"mape"`
}

// Report aggregates every analysis over a table. Notes explain anything
// that was skipped instead of computed.
type Report struct {
	Columns      []ColumnStats      `json:"columns,omitempty"`
	Correlations *CorrelationMatrix `json:"correlations,omitempty"`
	Outliers     []OutlierReport    `json:"outliers,omitempty"`
	Trend        *TrendEstimate     `json:"trend,omitempty"`
	Notes        []string           `json:"notes,omitempty"`
}
