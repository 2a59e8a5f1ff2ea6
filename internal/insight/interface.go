package insight

import (
	"context"

	"insight-engine/internal/model"
)

// UseCase is the single entry point the delivery layer depends on.
type UseCase interface {
	// Process answers a natural-language analytics question. It always
	// returns a Response for non-empty queries; degraded stages are
	// reported through Response.Diagnostics.
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (Response, error)
}

// ProcessInput is the raw request body for Process.
type ProcessInput struct {
	Query       string
	FormatHints []string
}
