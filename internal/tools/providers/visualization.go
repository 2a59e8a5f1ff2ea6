package providers

import (
	"context"
	"fmt"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartPoint is one labelled value in a series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSpec is the renderer-agnostic chart description returned by the
// visualization provider. No rendering happens server-side.
type ChartSpec struct {
	ChartType  string       `json:"chart_type"`
	Title      string       `json:"title"`
	XAxis      string       `json:"x_axis"`
	YAxis      string       `json:"y_axis"`
	Points     []ChartPoint `json:"points"`
	Colors     []string     `json:"colors"`
	ShowLegend bool         `json:"show_legend"`
	ShowGrid   bool         `json:"show_grid"`
}

// VisualizationProvider builds chart specs from tabular parameters. It
// performs no I/O and is trivially safe for concurrent use.
type VisualizationProvider struct{}

// NewVisualizationProvider creates the chart-spec builder.
func NewVisualizationProvider() *VisualizationProvider {
	return &VisualizationProvider{}
}

func (p *VisualizationProvider) Name() string { return "visualization" }

func (p *VisualizationProvider) Keywords() []string {
	return []string{"chart", "plot", "graph", "visualize", "draw", "show"}
}

func (p *VisualizationProvider) Affinities() map[insight.IntentCategory]float64 {
	return map[insight.IntentCategory]float64{
		insight.IntentTrend:       0.6,
		insight.IntentComparative: 0.6,
		insight.IntentDescriptive: 0.4,
	}
}

func (p *VisualizationProvider) Class() tools.TimeoutClass { return tools.TimeoutShort }

// Invoke supports "build" with "chart_type", "title", "labels" and
// "values" parameters.
func (p *VisualizationProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if method != "build" {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	chartType, _ := params["chart_type"].(string)
	if chartType == "" {
		chartType = "bar"
	}
	title, _ := params["title"].(string)

	labels := toStringSlice(params["labels"])
	values := toFloatSlice(params["values"])
	if len(values) == 0 {
		return nil, fmt.Errorf("values parameter is required")
	}

	spec := ChartSpec{
		ChartType:  chartType,
		Title:      title,
		XAxis:      "period",
		YAxis:      "value",
		ShowLegend: true,
		ShowGrid:   chartType != "pie",
		Colors:     defaultColors[:1],
	}
	for i, v := range values {
		label := fmt.Sprintf("%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		spec.Points = append(spec.Points, ChartPoint{Label: label, Value: v})
	}

	return spec, nil
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if direct, ok := v.([]string); ok {
			return direct
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toFloatSlice(v any) []float64 {
	items, ok := v.([]any)
	if !ok {
		if direct, ok := v.([]float64); ok {
			return direct
		}
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := item.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}
