package workflow

import (
	"context"
	"strings"

	"insight-engine/internal/insight"
)

// decomposeTask builds the TaskPlan from Intent + Context. An ambiguous
// or zero-confidence intent yields a single best-effort task instead of
// failing; the user's learned preference can bias which analysis that
// task leans toward.
func (e *Engine) decomposeTask(ctx context.Context, st *State) {
	if st.Intent.Category == insight.IntentUnknown || st.Intent.Confidence == 0 {
		st.Plan = e.bestEffortPlan(ctx, st)
		return
	}

	var tasks []insight.SubTask

	tasks = append(tasks, insight.SubTask{
		Name:       "fetch-metric-data",
		Capability: insight.CapabilityDatabase,
		Params:     fetchParams(st.Intent),
	})

	switch st.Intent.Category {
	case insight.IntentTrend:
		tasks = append(tasks, insight.SubTask{
			Name:       "trend-analysis",
			Capability: insight.CapabilityStatistics,
			Params:     map[string]any{"forecast_periods": e.cfg.ForecastPeriods},
		})
	case insight.IntentAnomaly:
		tasks = append(tasks, insight.SubTask{
			Name:       "outlier-scan",
			Capability: insight.CapabilityStatistics,
		})
	case insight.IntentComparative:
		tasks = append(tasks, insight.SubTask{
			Name:       "correlation-analysis",
			Capability: insight.CapabilityStatistics,
		})
	default:
		tasks = append(tasks, insight.SubTask{
			Name:       "summary-statistics",
			Capability: insight.CapabilityStatistics,
		})
	}

	if wantsChart(st.Query) {
		tasks = append(tasks, insight.SubTask{
			Name:       "build-chart",
			Capability: insight.CapabilityVisualization,
		})
	}

	st.Plan = insight.TaskPlan{Tasks: tasks}
}

// bestEffortPlan is the fallback for unclassifiable queries: one generic
// analysis task, biased toward the category the user asks about most.
func (e *Engine) bestEffortPlan(ctx context.Context, st *State) insight.TaskPlan {
	task := insight.SubTask{
		Name:       "best-effort-analysis",
		Capability: insight.CapabilityStatistics,
		Params:     map[string]any{},
	}

	if e.memory != nil && st.Query.UserID != "" {
		profile, err := e.memory.Preferences(ctx, st.Query.UserID)
		if err != nil {
			st.addDiagnostic(StageDecomposeTask, "preference lookup degraded: "+err.Error())
		} else if dominant := profile.Dominant(); dominant != "" {
			task.Params["bias"] = dominant
		}
	}

	return insight.TaskPlan{Tasks: []insight.SubTask{task}}
}

func fetchParams(intent insight.Intent) map[string]any {
	params := map[string]any{"limit": 500}
	if len(intent.Metrics) > 0 {
		params["metric"] = intent.Metrics[0]
	}
	if intent.TimeRange != nil {
		params["from"] = intent.TimeRange.From.Unix()
		params["to"] = intent.TimeRange.To.Unix()
	}
	for k, v := range intent.Filters {
		params[k] = v
	}
	return params
}

func planNeedsChart(plan insight.TaskPlan) bool {
	for _, t := range plan.Tasks {
		if t.Capability == insight.CapabilityVisualization {
			return true
		}
	}
	return false
}

func wantsChart(q insight.Query) bool {
	for _, hint := range q.FormatHints {
		switch strings.ToLower(hint) {
		case "chart", "plot", "graph":
			return true
		}
	}
	lowered := strings.ToLower(q.Text)
	return strings.Contains(lowered, "chart") || strings.Contains(lowered, "plot") ||
		strings.Contains(lowered, "visuali")
}
