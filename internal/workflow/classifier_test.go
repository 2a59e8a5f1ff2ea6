package workflow

import (
	"testing"
	"time"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
)

func newTestEngine(mem ContextStore, llm Completer, reg *tools.Registry) *Engine {
	if reg == nil {
		reg = tools.NewRegistry()
	}
	dispatcher := tools.NewDispatcher(reg, fastDispatchConfig(), &mockLogger{})
	return New(&mockLogger{}, reg, dispatcher, mem, llm, Config{
		HardTimeout:     5 * time.Second,
		ForecastPeriods: 2,
	})
}

func classify(t *testing.T, text string) insight.Intent {
	t.Helper()
	e := newTestEngine(nil, nil, nil)
	st := &State{Query: insight.Query{Text: text}}
	e.analyzeQuery(st)
	return st.Intent
}

func TestAnalyzeQuery(t *testing.T) {
	t.Run("trend keywords", func(t *testing.T) {
		intent := classify(t, "show me the revenue trend and forecast the growth")
		if intent.Category != insight.IntentTrend {
			t.Fatalf("expected trend, got %s", intent.Category)
		}
		if intent.Confidence < 0.75 {
			t.Errorf("expected strong confidence for three keywords, got %f", intent.Confidence)
		}
	})

	t.Run("anomaly keywords", func(t *testing.T) {
		if got := classify(t, "any unusual spikes in errors?").Category; got != insight.IntentAnomaly {
			t.Errorf("expected anomaly, got %s", got)
		}
	})

	t.Run("comparative keywords", func(t *testing.T) {
		if got := classify(t, "compare sales between regions").Category; got != insight.IntentComparative {
			t.Errorf("expected comparative, got %s", got)
		}
	})

	t.Run("descriptive keywords", func(t *testing.T) {
		if got := classify(t, "give me a summary of average order value").Category; got != insight.IntentDescriptive {
			t.Errorf("expected descriptive, got %s", got)
		}
	})

	t.Run("no match yields unknown with zero confidence", func(t *testing.T) {
		intent := classify(t, "hello there")
		if intent.Category != insight.IntentUnknown {
			t.Errorf("expected unknown, got %s", intent.Category)
		}
		if intent.Confidence != 0 {
			t.Errorf("expected zero confidence, got %f", intent.Confidence)
		}
	})

	t.Run("metric extraction", func(t *testing.T) {
		intent := classify(t, "average revenue and cost per user")
		want := map[string]bool{"revenue": true, "cost": true, "users": false}
		for _, m := range intent.Metrics {
			if _, known := want[m]; known {
				want[m] = true
			}
		}
		if !want["revenue"] || !want["cost"] {
			t.Errorf("expected revenue and cost extracted, got %v", intent.Metrics)
		}
	})

	t.Run("dimension filter", func(t *testing.T) {
		intent := classify(t, "summarize sales by region")
		if intent.Filters["dimension"] != "region" {
			t.Errorf("expected dimension filter 'region', got %v", intent.Filters)
		}
	})
}

func TestExtractTimeRange(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("last N days", func(t *testing.T) {
		tr := extractTimeRange("revenue for the last 7 days", now)
		if tr == nil {
			t.Fatal("expected a time range")
		}
		if want := now.Add(-7 * 24 * time.Hour); !tr.From.Equal(want) {
			t.Errorf("expected from %v, got %v", want, tr.From)
		}
		if !tr.To.Equal(now) {
			t.Errorf("expected to %v, got %v", now, tr.To)
		}
	})

	t.Run("last N months", func(t *testing.T) {
		tr := extractTimeRange("orders last 3 months", now)
		if tr == nil {
			t.Fatal("expected a time range")
		}
		if want := now.Add(-3 * 30 * 24 * time.Hour); !tr.From.Equal(want) {
			t.Errorf("expected from %v, got %v", want, tr.From)
		}
	})

	t.Run("today", func(t *testing.T) {
		tr := extractTimeRange("sales today", now)
		if tr == nil {
			t.Fatal("expected a time range")
		}
		if tr.From.Hour() != 0 || tr.From.Day() != now.Day() {
			t.Errorf("expected midnight start, got %v", tr.From)
		}
	})

	t.Run("no window", func(t *testing.T) {
		if tr := extractTimeRange("overall revenue", now); tr != nil {
			t.Errorf("expected nil time range, got %v", tr)
		}
	})
}
