package workflow

import (
	"context"
	"testing"

	"insight-engine/internal/insight"
	"insight-engine/internal/memory"
)

func TestDecomposeTask(t *testing.T) {
	ctx := context.Background()

	planFor := func(e *Engine, q insight.Query, intent insight.Intent) insight.TaskPlan {
		st := &State{Query: q, Intent: intent}
		e.decomposeTask(ctx, st)
		return st.Plan
	}

	t.Run("trend intent plans fetch then trend analysis", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		plan := planFor(e, insight.Query{Text: "revenue trend"}, insight.Intent{
			Category: insight.IntentTrend, Confidence: 0.75, Metrics: []string{"revenue"},
		})

		if len(plan.Tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(plan.Tasks))
		}
		if plan.Tasks[0].Capability != insight.CapabilityDatabase {
			t.Errorf("expected database fetch first, got %s", plan.Tasks[0].Capability)
		}
		if plan.Tasks[1].Name != "trend-analysis" {
			t.Errorf("expected trend-analysis, got %s", plan.Tasks[1].Name)
		}
		if plan.Tasks[0].Params["metric"] != "revenue" {
			t.Errorf("expected metric param, got %v", plan.Tasks[0].Params)
		}
	})

	t.Run("anomaly intent plans outlier scan", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		plan := planFor(e, insight.Query{Text: "outliers"}, insight.Intent{
			Category: insight.IntentAnomaly, Confidence: 0.5,
		})
		if plan.Tasks[1].Name != "outlier-scan" {
			t.Errorf("expected outlier-scan, got %s", plan.Tasks[1].Name)
		}
	})

	t.Run("chart hint appends visualization task", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		plan := planFor(e,
			insight.Query{Text: "summarize sales", FormatHints: []string{"chart"}},
			insight.Intent{Category: insight.IntentDescriptive, Confidence: 0.5})

		last := plan.Tasks[len(plan.Tasks)-1]
		if last.Capability != insight.CapabilityVisualization {
			t.Errorf("expected visualization task last, got %s", last.Capability)
		}
	})

	t.Run("unknown intent yields single best-effort task", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil)
		plan := planFor(e, insight.Query{Text: "hello"}, insight.Intent{Category: insight.IntentUnknown})

		if len(plan.Tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(plan.Tasks))
		}
		if plan.Tasks[0].Name != "best-effort-analysis" {
			t.Errorf("expected best-effort-analysis, got %s", plan.Tasks[0].Name)
		}
	})

	t.Run("best-effort task biased by learned preference", func(t *testing.T) {
		mem := &stubMemory{profile: memory.PreferenceProfile{
			CategoryCounts: map[string]int{"trend": 3, "anomaly": 1},
		}}
		e := newTestEngine(mem, nil, nil)
		plan := planFor(e, insight.Query{Text: "hello", UserID: "u1"},
			insight.Intent{Category: insight.IntentUnknown})

		if plan.Tasks[0].Params["bias"] != "trend" {
			t.Errorf("expected trend bias, got %v", plan.Tasks[0].Params)
		}
	})
}
