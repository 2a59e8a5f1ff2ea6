package insight

import (
	"time"

	"insight-engine/internal/analytics"
)

// IntentCategory is the classified purpose of a query.
type IntentCategory string

const (
	IntentDescriptive IntentCategory = "descriptive"
	IntentComparative IntentCategory = "comparative"
	IntentTrend       IntentCategory = "trend"
	IntentAnomaly     IntentCategory = "anomaly"
	IntentUnknown     IntentCategory = "unknown"
)

// Capability tags a sub-task with the kind of provider it needs.
type Capability string

const (
	CapabilityStatistics    Capability = "statistics"
	CapabilityVisualization Capability = "visualization"
	CapabilityLookup        Capability = "external-lookup"
	CapabilityDatabase      Capability = "database-query"
)

// RelevanceTier is the coarse bucket for provider relevance.
type RelevanceTier string

const (
	TierHigh   RelevanceTier = "high"
	TierMedium RelevanceTier = "medium"
	TierLow    RelevanceTier = "low"
)

// Query is the immutable request input.
type Query struct {
	Text        string
	SessionID   string
	UserID      string
	FormatHints []string
}

// TimeRange is an optional extracted analysis window.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Intent is the classification of a query. Built once by the first
// pipeline stage and never mutated afterward.
type Intent struct {
	Category   IntentCategory
	Confidence float64
	Metrics    []string
	TimeRange  *TimeRange
	Filters    map[string]string
}

// SubTask is one unit of a TaskPlan.
type SubTask struct {
	Name       string
	Capability Capability
	Params     map[string]any
}

// TaskPlan is the ordered set of sub-tasks derived from Intent + Context.
type TaskPlan struct {
	Tasks []SubTask
}

// FailureKind classifies a failed tool invocation.
type FailureKind string

const (
	FailureTimeout  FailureKind = "timeout"
	FailureProvider FailureKind = "provider-error"
	FailureNotFound FailureKind = "not-found"
)

// Invocation is a request to one capability provider.
type Invocation struct {
	Provider string
	Method   string
	Params   map[string]any
	Timeout  time.Duration
	Tier     RelevanceTier
}

// ToolResult is the terminal outcome of one invocation. Either Payload is
// set (success) or Failure is non-empty.
type ToolResult struct {
	Provider string
	Method   string
	Payload  any
	Failure  FailureKind
	Err      string
	Elapsed  time.Duration
}

// OK reports whether the invocation succeeded.
func (r ToolResult) OK() bool {
	return r.Failure == ""
}

// Response is the structured answer returned to the caller.
type Response struct {
	RequestID       string            `json:"request_id"`
	Text            string            `json:"text"`
	Analysis        *analytics.Report `json:"analysis,omitempty"`
	ToolResults     []ToolResult      `json:"tool_results,omitempty"`
	Recommendations []string          `json:"recommendations"`
	Diagnostics     []string          `json:"diagnostics"`
	DurationMs      int64             `json:"duration_ms"`
}
