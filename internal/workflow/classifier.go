package workflow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"insight-engine/internal/insight"
)

// Fixed classification taxonomy. Categories are scored by how many of
// their keywords the query contains; the best score wins.
var intentKeywords = map[insight.IntentCategory][]string{
	insight.IntentTrend: {
		"trend", "over time", "forecast", "growth", "trajectory",
		"predict", "projection", "increase", "decrease",
	},
	insight.IntentAnomaly: {
		"anomal", "outlier", "unusual", "spike", "irregular",
		"deviation", "unexpected",
	},
	insight.IntentComparative: {
		"compare", "comparison", "versus", " vs ", "difference",
		"between", "against", "correlat",
	},
	insight.IntentDescriptive: {
		"average", "mean", "median", "summary", "summarize",
		"describe", "distribution", "statistics", "total", "overview",
	},
}

// metricLexicon is the set of metric names the classifier can extract as
// entities from free text.
var metricLexicon = []string{
	"revenue", "sales", "cost", "profit", "orders", "users",
	"latency", "errors", "conversion", "traffic", "value", "count",
}

var (
	lastNPattern   = regexp.MustCompile(`last\s+(\d+)\s+(day|week|month|quarter|year)s?`)
	groupByPattern = regexp.MustCompile(`\bby\s+([a-z]+)`)
)

// analyzeQuery classifies Intent from raw text. Deterministic keyword
// matching against the fixed taxonomy; no external calls.
func (e *Engine) analyzeQuery(st *State) {
	lowered := strings.ToLower(st.Query.Text)

	best := insight.IntentUnknown
	bestMatches := 0
	// Stable iteration so ties resolve the same way every time.
	for _, cat := range []insight.IntentCategory{
		insight.IntentTrend, insight.IntentAnomaly,
		insight.IntentComparative, insight.IntentDescriptive,
	} {
		matches := 0
		for _, kw := range intentKeywords[cat] {
			if strings.Contains(lowered, kw) {
				matches++
			}
		}
		if matches > bestMatches {
			best, bestMatches = cat, matches
		}
	}

	st.Intent = insight.Intent{
		Category:   best,
		Confidence: confidence(bestMatches),
		Metrics:    extractMetrics(lowered),
		TimeRange:  extractTimeRange(lowered, time.Now()),
		Filters:    extractFilters(lowered),
	}
}

// confidence maps the match count to [0,1]. One keyword is a weak signal,
// three or more a strong one.
func confidence(matches int) float64 {
	switch {
	case matches == 0:
		return 0
	case matches == 1:
		return 0.5
	case matches == 2:
		return 0.75
	default:
		return 0.9
	}
}

func extractMetrics(lowered string) []string {
	var metrics []string
	for _, m := range metricLexicon {
		if strings.Contains(lowered, m) {
			metrics = append(metrics, m)
		}
	}
	return metrics
}

// extractTimeRange resolves relative windows ("last 7 days", "this week",
// "today") against now. Absent windows return nil.
func extractTimeRange(lowered string, now time.Time) *insight.TimeRange {
	if m := lastNPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil
		}
		var d time.Duration
		switch m[2] {
		case "day":
			d = time.Duration(n) * 24 * time.Hour
		case "week":
			d = time.Duration(n) * 7 * 24 * time.Hour
		case "month":
			d = time.Duration(n) * 30 * 24 * time.Hour
		case "quarter":
			d = time.Duration(n) * 91 * 24 * time.Hour
		case "year":
			d = time.Duration(n) * 365 * 24 * time.Hour
		}
		return &insight.TimeRange{From: now.Add(-d), To: now}
	}

	switch {
	case strings.Contains(lowered, "today"):
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &insight.TimeRange{From: start, To: now}
	case strings.Contains(lowered, "this week"):
		return &insight.TimeRange{From: now.Add(-7 * 24 * time.Hour), To: now}
	case strings.Contains(lowered, "this month"):
		return &insight.TimeRange{From: now.Add(-30 * 24 * time.Hour), To: now}
	}
	return nil
}

// stop-list for "by <word>" false positives like "by far".
var dimensionStop = map[string]bool{"far": true, "the": true, "a": true, "now": true}

func extractFilters(lowered string) map[string]string {
	filters := make(map[string]string)
	if m := groupByPattern.FindStringSubmatch(lowered); m != nil && !dimensionStop[m[1]] {
		filters["dimension"] = m[1]
	}
	return filters
}
