// Package providers implements the capability providers registered with
// the tool registry: database query, documentation search, web search,
// visualization, and file-backed data access.
package providers

// TabularPayload is the payload shape returned by data-bearing providers.
// The ProcessData stage feeds it into the analytics library.
type TabularPayload struct {
	Headers []string         `json:"headers"`
	Rows    []map[string]any `json:"rows"`
}

// SearchHit is one result from a lookup provider.
type SearchHit struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}
