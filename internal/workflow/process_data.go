package workflow

import (
	"context"

	"insight-engine/internal/analytics"
	"insight-engine/internal/insight"
	"insight-engine/internal/tools/providers"
)

// processData runs the analytics library over whatever tabular data the
// tool results carry. With no resolvable data it produces an explanatory
// report instead of failing.
func (e *Engine) processData(ctx context.Context, st *State) {
	table, source := tableFromResults(st.ToolResults)
	if table.Empty() {
		st.Analysis = &analytics.Report{
			Notes: []string{"no tabular data available; analysis limited to retrieved context"},
		}
		st.addDiagnostic(StageProcessData, "analysis degraded: no numeric data resolved")
		return
	}

	opts := analytics.Options{
		Trend:           st.Intent.Category == insight.IntentTrend,
		ForecastPeriods: e.cfg.ForecastPeriods,
	}
	applyPlanParams(st.Plan, &opts)
	if len(st.Intent.Metrics) > 0 {
		if _, ok := table.Column(st.Intent.Metrics[0]); ok {
			opts.TrendColumn = st.Intent.Metrics[0]
		}
	}

	report := analytics.Analyze(table, opts)
	st.Analysis = &report
	for _, note := range report.Notes {
		st.addDiagnostic(StageProcessData, note)
	}

	e.l.Debugf(ctx, "%s: analyzed %d columns from %s", LogPrefixProcess, len(report.Columns), source)
}

// applyPlanParams folds statistics sub-task params into the analysis
// options: a learned "trend" bias turns on trend estimation for the
// best-effort task, and a task-level forecast horizon overrides the
// engine default.
func applyPlanParams(plan insight.TaskPlan, opts *analytics.Options) {
	for _, task := range plan.Tasks {
		if task.Capability != insight.CapabilityStatistics {
			continue
		}
		if bias, ok := task.Params["bias"].(string); ok && bias == string(insight.IntentTrend) {
			opts.Trend = true
		}
		if periods, ok := intPlanParam(task.Params["forecast_periods"]); ok && periods > 0 {
			opts.ForecastPeriods = periods
		}
	}
}

func intPlanParam(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// tableFromResults picks the first successful tabular payload. Database
// results win over file data because they are query-scoped.
func tableFromResults(results []insight.ToolResult) (analytics.Table, string) {
	best := -1
	for i, res := range results {
		if !res.OK() {
			continue
		}
		if _, ok := res.Payload.(providers.TabularPayload); !ok {
			continue
		}
		if res.Provider == providerDatabase {
			best = i
			break
		}
		if best == -1 {
			best = i
		}
	}

	if best == -1 {
		return analytics.Table{}, ""
	}
	payload := results[best].Payload.(providers.TabularPayload)
	return analytics.FromRecords(payload.Headers, payload.Rows), results[best].Provider
}
