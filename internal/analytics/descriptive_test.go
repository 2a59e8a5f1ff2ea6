package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDescribe(t *testing.T) {
	t.Run("known series", func(t *testing.T) {
		col := Column{Name: "value", Values: []float64{1, 2, 3, 4, 5, 100}}

		stats, err := Describe(col)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Count != 6 {
			t.Errorf("expected count 6, got %d", stats.Count)
		}
		if !almostEqual(stats.Mean, 19.1666, 0.001) {
			t.Errorf("expected mean ~19.17, got %f", stats.Mean)
		}
		if stats.Median != 3.5 {
			t.Errorf("expected median 3.5, got %f", stats.Median)
		}
		if stats.Min != 1 || stats.Max != 100 {
			t.Errorf("expected min 1 max 100, got %f %f", stats.Min, stats.Max)
		}
		if stats.Skewness <= 0 {
			t.Errorf("expected positive skew for right-tailed data, got %f", stats.Skewness)
		}
	})

	t.Run("empty column", func(t *testing.T) {
		_, err := Describe(Column{Name: "empty"})
		if err != ErrInsufficientData {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("single value", func(t *testing.T) {
		stats, err := Describe(Column{Name: "one", Values: []float64{42}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Mean != 42 || stats.Median != 42 || stats.StdDev != 0 {
			t.Errorf("unexpected stats for single value: %+v", stats)
		}
	})

	t.Run("constant column has zero spread", func(t *testing.T) {
		stats, err := Describe(Column{Name: "flat", Values: []float64{7, 7, 7, 7}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.StdDev != 0 || stats.Skewness != 0 {
			t.Errorf("expected zero spread, got %+v", stats)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		values := []float64{3, 1, 2}
		if _, err := Describe(Column{Name: "v", Values: values}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if values[0] != 3 || values[1] != 1 || values[2] != 2 {
			t.Errorf("input mutated: %v", values)
		}
	})
}

func TestFromRecords(t *testing.T) {
	rows := []map[string]any{
		{"region": "north", "sales": 10.0, "units": 3},
		{"region": "south", "sales": 20.0, "units": 5},
	}

	table := FromRecords([]string{"region", "sales", "units"}, rows)

	if len(table.Columns) != 2 {
		t.Fatalf("expected 2 numeric columns, got %d", len(table.Columns))
	}
	if table.Columns[0].Name != "sales" || table.Columns[1].Name != "units" {
		t.Errorf("unexpected column order: %v, %v", table.Columns[0].Name, table.Columns[1].Name)
	}
	if table.Columns[1].Values[1] != 5 {
		t.Errorf("int values should be converted, got %v", table.Columns[1].Values)
	}
}
