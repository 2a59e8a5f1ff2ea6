package workflow

import (
	"context"
	"testing"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools/providers"
)

func tabularResult(values []float64) insight.ToolResult {
	rows := make([]map[string]any, 0, len(values))
	for _, v := range values {
		rows = append(rows, map[string]any{"value": v})
	}
	return insight.ToolResult{
		Provider: providerDatabase,
		Method:   "query",
		Payload:  providers.TabularPayload{Headers: []string{"value"}, Rows: rows},
	}
}

func TestProcessData(t *testing.T) {
	ctx := context.Background()
	series := []float64{10, 12, 14, 16, 18, 20, 22, 24, 26, 28}

	t.Run("learned trend bias enables trend estimation", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		st := &State{
			Intent: insight.Intent{Category: insight.IntentUnknown},
			Plan: insight.TaskPlan{Tasks: []insight.SubTask{{
				Name:       "best-effort-analysis",
				Capability: insight.CapabilityStatistics,
				Params:     map[string]any{"bias": "trend"},
			}}},
			ToolResults: []insight.ToolResult{tabularResult(series)},
		}

		e.processData(ctx, st)

		if st.Analysis == nil || st.Analysis.Trend == nil {
			t.Fatal("expected trend estimate for a trend-biased best-effort task")
		}
	})

	t.Run("no bias leaves trend off for unknown intent", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		st := &State{
			Intent: insight.Intent{Category: insight.IntentUnknown},
			Plan: insight.TaskPlan{Tasks: []insight.SubTask{{
				Name:       "best-effort-analysis",
				Capability: insight.CapabilityStatistics,
			}}},
			ToolResults: []insight.ToolResult{tabularResult(series)},
		}

		e.processData(ctx, st)

		if st.Analysis == nil {
			t.Fatal("expected analysis report")
		}
		if st.Analysis.Trend != nil {
			t.Error("expected no trend estimate without a bias")
		}
	})

	t.Run("plan forecast horizon overrides config", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil) // config horizon is 2
		st := &State{
			Intent: insight.Intent{Category: insight.IntentTrend},
			Plan: insight.TaskPlan{Tasks: []insight.SubTask{{
				Name:       "trend-analysis",
				Capability: insight.CapabilityStatistics,
				Params:     map[string]any{"forecast_periods": 4},
			}}},
			ToolResults: []insight.ToolResult{tabularResult(series)},
		}

		e.processData(ctx, st)

		if st.Analysis == nil || st.Analysis.Trend == nil {
			t.Fatal("expected trend estimate")
		}
		if got := len(st.Analysis.Trend.Forecast); got != 4 {
			t.Errorf("expected 4 forecast points, got %d", got)
		}
	})
}
