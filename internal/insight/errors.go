package insight

import "errors"

// Domain-specific errors for the insight pipeline.
var (
	// ErrEmptyQuery is the only error surfaced to the caller as a request
	// failure; everything else degrades into diagnostics.
	ErrEmptyQuery = errors.New("query text is empty")

	ErrMemoryUnavailable = errors.New("memory store unavailable")
	ErrNoProviders       = errors.New("no relevant providers selected")
)
