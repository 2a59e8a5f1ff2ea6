package providers

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
)

const maxWebHits = 5

// WebSearchProvider answers external lookups through the Google Custom
// Search API. Authentication is API-key based.
type WebSearchProvider struct {
	svc      *customsearch.Service
	engineID string
}

// NewWebSearchProvider builds the search client. apiKey and engineID come
// from config; an error here means the provider is left unregistered and
// the pipeline simply works without web search.
func NewWebSearchProvider(ctx context.Context, apiKey, engineID string) (*WebSearchProvider, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build custom search client: %w", err)
	}
	return &WebSearchProvider{svc: svc, engineID: engineID}, nil
}

func (p *WebSearchProvider) Name() string { return "web_search" }

func (p *WebSearchProvider) Keywords() []string {
	return []string{"web", "online", "latest", "news", "industry", "benchmark"}
}

func (p *WebSearchProvider) Affinities() map[insight.IntentCategory]float64 {
	return map[insight.IntentCategory]float64{
		insight.IntentComparative: 0.4,
		insight.IntentUnknown:     0.4,
	}
}

func (p *WebSearchProvider) Class() tools.TimeoutClass { return tools.TimeoutMedium }

// Invoke supports "search" with a "query" parameter.
func (p *WebSearchProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if method != "search" {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	resp, err := p.svc.Cse.List().
		Q(query).
		Cx(p.engineID).
		Num(maxWebHits).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search failed: %w", err)
	}

	hits := make([]SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, SearchHit{
			Title:   item.Title,
			Source:  item.Link,
			Snippet: item.Snippet,
		})
	}
	return hits, nil
}
