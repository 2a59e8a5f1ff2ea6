package workflow

import (
	"context"
	"time"

	"insight-engine/internal/analytics"
	"insight-engine/internal/insight"
	"insight-engine/internal/memory"
	"insight-engine/pkg/llmprovider"
)

// ContextStore is the slice of the memory adapter the engine depends on.
type ContextStore interface {
	LoadContext(ctx context.Context, sessionID, queryText string) (memory.ConversationContext, error)
	SaveTurn(ctx context.Context, sessionID, userID string, turn memory.Turn) error
	Preferences(ctx context.Context, userID string) (memory.PreferenceProfile, error)
}

// Completer is the optional text-completion capability used for response
// phrasing only; the engine works without it.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config tunes the engine.
type Config struct {
	// HardTimeout bounds one full Process call.
	HardTimeout time.Duration

	// ForecastPeriods is the number of future points a trend estimate
	// extrapolates.
	ForecastPeriods int

	// DatasetPath is handed to the file_data provider when selected.
	DatasetPath string
}

// DefaultConfig returns the engine policy used when config is silent.
func DefaultConfig() Config {
	return Config{
		HardTimeout:     30 * time.Second,
		ForecastPeriods: 2,
	}
}

// State is the single mutable aggregate threaded through the stages.
// Fields are append-only within one traversal: each stage writes its own
// output field and only reads earlier ones. A State is request-scoped and
// never shared across concurrent requests.
type State struct {
	Query       insight.Query
	Intent      insight.Intent
	Context     memory.ConversationContext
	Plan        insight.TaskPlan
	ToolResults []insight.ToolResult
	Analysis    *analytics.Report

	Text            string
	Recommendations []string
	Diagnostics     []string
}

func (s *State) addDiagnostic(stage, msg string) {
	s.Diagnostics = append(s.Diagnostics, stage+": "+msg)
}
