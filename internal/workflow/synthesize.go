package workflow

import (
	"context"
	"fmt"
	"math"
	"strings"

	"insight-engine/internal/analytics"
	"insight-engine/internal/insight"
	"insight-engine/pkg/gemini"
	"insight-engine/pkg/llmprovider"
)

const maxChartPoints = 20

// synthesizeResult merges Intent, AnalysisResult, and ToolResults into
// the human-readable answer plus ranked recommendations. The text is
// fully rule-based; a text-completion provider, when configured, only
// rephrases it and any phrasing failure falls back to the rule-based
// form.
func (e *Engine) synthesizeResult(ctx context.Context, st *State, vizSelected bool) {
	if vizSelected {
		e.dispatchChart(ctx, st)
	}

	st.Text = composeText(st)
	st.Recommendations = composeRecommendations(st)

	if e.llm == nil {
		return
	}
	phrased, err := e.phrase(ctx, st)
	if err != nil {
		st.addDiagnostic(StageSynthesizeResult, "narrative phrasing degraded: "+err.Error())
		return
	}
	st.Text = phrased
}

// dispatchChart runs the deferred visualization invocation with the
// computed series, through the dispatcher so its timeout and breaker
// policy still apply.
func (e *Engine) dispatchChart(ctx context.Context, st *State) {
	series, labels := chartSeries(st)
	if len(series) == 0 {
		st.addDiagnostic(StageSynthesizeResult, "chart skipped: no numeric series to plot")
		return
	}

	chartType := "bar"
	if st.Intent.Category == insight.IntentTrend {
		chartType = "line"
	}

	results := e.dispatcher.Dispatch(ctx, []insight.Invocation{{
		Provider: providerVisualization,
		Method:   "build",
		Params: map[string]any{
			"chart_type": chartType,
			"title":      strings.TrimSpace(st.Query.Text),
			"labels":     labels,
			"values":     series,
		},
		Tier: insight.TierMedium,
	}})

	st.ToolResults = append(st.ToolResults, results...)
	for _, res := range results {
		if !res.OK() {
			st.addDiagnostic(StageSynthesizeResult,
				fmt.Sprintf("chart build failed: %s (%s)", res.Failure, res.Err))
		}
	}
}

// chartSeries picks the series to plot: the trend forecast when one was
// computed, otherwise the first resolved numeric column, capped at
// maxChartPoints.
func chartSeries(st *State) ([]float64, []string) {
	if st.Analysis != nil && st.Analysis.Trend != nil && len(st.Analysis.Trend.Forecast) > 0 {
		labels := make([]string, len(st.Analysis.Trend.Forecast))
		for i := range labels {
			labels[i] = fmt.Sprintf("+%d", i+1)
		}
		return st.Analysis.Trend.Forecast, labels
	}

	table, _ := tableFromResults(st.ToolResults)
	if len(table.Columns) == 0 {
		return nil, nil
	}
	values := table.Columns[0].Values
	if len(values) > maxChartPoints {
		values = values[len(values)-maxChartPoints:]
	}
	labels := make([]string, len(values))
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return values, labels
}

func composeText(st *State) string {
	var b strings.Builder

	switch st.Intent.Category {
	case insight.IntentTrend:
		b.WriteString("Trend analysis")
	case insight.IntentAnomaly:
		b.WriteString("Anomaly check")
	case insight.IntentComparative:
		b.WriteString("Comparison")
	case insight.IntentDescriptive:
		b.WriteString("Summary")
	default:
		b.WriteString("Best-effort analysis")
	}
	b.WriteString(" for your query. ")

	if st.Analysis == nil || len(st.Analysis.Columns) == 0 {
		b.WriteString("No numeric data could be resolved, so only retrieved context is reported.")
		return b.String()
	}

	first := st.Analysis.Columns[0]
	b.WriteString(fmt.Sprintf("%s: %d values, mean %.2f, median %.2f, standard deviation %.2f.",
		first.Name, first.Count, first.Mean, first.Median, first.StdDev))

	if total := flaggedOutliers(st.Analysis); total > 0 {
		b.WriteString(fmt.Sprintf(" %d outlier value(s) were flagged.", total))
	}

	if st.Analysis.Trend != nil {
		direction := "flat"
		if st.Analysis.Trend.Slope > 0 {
			direction = "increasing"
		} else if st.Analysis.Trend.Slope < 0 {
			direction = "decreasing"
		}
		b.WriteString(fmt.Sprintf(" The %s series is %s (slope %.2f, MAPE %.1f%%).",
			st.Analysis.Trend.Column, direction, st.Analysis.Trend.Slope, st.Analysis.Trend.MAPE))
	}

	return b.String()
}

// composeRecommendations ranks rule-based follow-ups: anomalies first,
// volatility second, then correlation and trend advice.
func composeRecommendations(st *State) []string {
	var recs []string
	if st.Analysis == nil {
		return recs
	}

	if total := flaggedOutliers(st.Analysis); total > 0 {
		recs = append(recs, fmt.Sprintf("Review the %d flagged data point(s) before drawing conclusions.", total))
	}

	for _, col := range st.Analysis.Columns {
		if col.Mean != 0 && col.StdDev > math.Abs(col.Mean) {
			recs = append(recs, fmt.Sprintf("Investigate volatility in %q: standard deviation exceeds the mean.", col.Name))
			break
		}
	}

	if pair, r, ok := strongestCorrelation(st.Analysis.Correlations); ok && math.Abs(r) >= 0.8 {
		recs = append(recs, fmt.Sprintf("Columns %s move together strongly (r=%.2f); consider analyzing them jointly.", pair, r))
	}

	if st.Analysis.Trend != nil && st.Analysis.Trend.MAPE > 25 {
		recs = append(recs, fmt.Sprintf("Treat the forecast with caution: error estimate is %.1f%%.", st.Analysis.Trend.MAPE))
	}

	return recs
}

func flaggedOutliers(report *analytics.Report) int {
	total := 0
	for _, o := range report.Outliers {
		total += o.Count
	}
	return total
}

// strongestCorrelation returns the off-diagonal pair with the largest
// absolute defined correlation.
func strongestCorrelation(m *analytics.CorrelationMatrix) (string, float64, bool) {
	if m == nil {
		return "", 0, false
	}
	var (
		best     float64
		bestPair string
		found    bool
	)
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			cell := m.Cells[i][j]
			if cell == nil {
				continue
			}
			if !found || math.Abs(*cell) > math.Abs(best) {
				best = *cell
				bestPair = m.Columns[i] + "/" + m.Columns[j]
				found = true
			}
		}
	}
	return bestPair, best, found
}

// phrase asks the text-completion provider to restate the rule-based
// findings. It never invents numbers: the prompt carries the computed
// findings verbatim.
func (e *Engine) phrase(ctx context.Context, st *State) (string, error) {
	findings := st.Text
	if len(st.Recommendations) > 0 {
		findings += "\nRecommendations: " + strings.Join(st.Recommendations, "; ")
	}

	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: gemini.NarrativeSystemPrompt}},
		},
		Messages: []llmprovider.Message{{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: gemini.BuildNarrativePrompt(st.Query.Text, findings)}},
		}},
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
