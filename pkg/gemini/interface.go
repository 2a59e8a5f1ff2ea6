package gemini

import "context"

// IGemini is the text-generation surface the provider adapter builds on.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent runs one generation request against the API.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model reports the configured model name.
	Model() string
}

// New validates cfg, applies defaults, and returns a ready client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
