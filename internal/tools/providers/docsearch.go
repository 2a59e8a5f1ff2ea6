package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
)

const (
	maxDocHits       = 5
	snippetRadius    = 120
	docFileExtension = ".md"
)

// DocSearchProvider answers documentation lookups by scanning a local
// markdown corpus for query terms.
type DocSearchProvider struct {
	dir string
}

// NewDocSearchProvider creates a provider over the markdown corpus at dir.
func NewDocSearchProvider(dir string) *DocSearchProvider {
	return &DocSearchProvider{dir: dir}
}

func (p *DocSearchProvider) Name() string { return "doc_search" }

func (p *DocSearchProvider) Keywords() []string {
	return []string{"documentation", "docs", "how to", "explain", "definition", "meaning"}
}

func (p *DocSearchProvider) Affinities() map[insight.IntentCategory]float64 {
	return map[insight.IntentCategory]float64{
		insight.IntentDescriptive: 0.4,
		insight.IntentUnknown:     0.5,
	}
}

func (p *DocSearchProvider) Class() tools.TimeoutClass { return tools.TimeoutShort }

// Invoke supports "search" with a "query" parameter and returns matching
// snippets.
func (p *DocSearchProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if method != "search" {
		return nil, os.ErrInvalid
	}

	query, _ := params["query"].(string)
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []SearchHit{}, nil
	}

	var hits []SearchHit
	err := filepath.WalkDir(p.dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != docFileExtension {
			return nil
		}
		if len(hits) >= maxDocHits {
			return filepath.SkipAll
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)
		lowered := strings.ToLower(content)

		for _, term := range terms {
			idx := strings.Index(lowered, term)
			if idx < 0 {
				continue
			}
			hits = append(hits, SearchHit{
				Title:   filepath.Base(path),
				Source:  path,
				Snippet: snippet(content, idx),
			})
			break
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return hits, nil
}

func snippet(content string, idx int) string {
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + snippetRadius
	if end > len(content) {
		end = len(content)
	}
	return strings.TrimSpace(content[start:end])
}
