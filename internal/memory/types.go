package memory

import "time"

// RecordKind classifies durable records and selects their retention.
type RecordKind string

const (
	KindSessionSummary RecordKind = "session_summary"
	KindPreference     RecordKind = "preference"
)

// Turn is one prior (query, response-summary) pair in a session.
type Turn struct {
	Query     string    `json:"query"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	Providers []string  `json:"providers,omitempty"`
	At        time.Time `json:"at"`
}

// ConversationContext is the bounded window of prior turns for a session,
// plus a continuity score measuring topical overlap with the current
// query. Read-only to the rest of the pipeline.
type ConversationContext struct {
	Turns      []Turn
	Continuity float64
}

// RecentProviders lists providers that succeeded in the context window,
// most recent first, deduplicated.
func (c ConversationContext) RecentProviders() []string {
	seen := make(map[string]bool)
	var out []string
	for i := len(c.Turns) - 1; i >= 0; i-- {
		for _, p := range c.Turns[i].Providers {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Record is one versioned durable entry. Records are never updated in
// place; every write appends a new version.
type Record struct {
	Key       string     `json:"key"`
	Kind      RecordKind `json:"kind"`
	Payload   []byte     `json:"payload"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// PreferenceProfile is the learned per-user signal: how often each intent
// category shows up in their history.
type PreferenceProfile struct {
	CategoryCounts map[string]int `json:"category_counts"`
}

// Dominant returns the most frequent category, empty when no history.
func (p PreferenceProfile) Dominant() string {
	var best string
	var bestCount int
	for category, count := range p.CategoryCounts {
		if count > bestCount || (count == bestCount && category < best) {
			best, bestCount = category, count
		}
	}
	return best
}

// Config selects retention windows for the two storage classes.
type Config struct {
	SessionTTL    time.Duration // short-TTL KV class
	PreferenceTTL time.Duration // durable class
	MaxTurns      int
	MaxTurnAge    time.Duration
}

// DefaultConfig returns the retention policy used when config is silent.
func DefaultConfig() Config {
	return Config{
		SessionTTL:    24 * time.Hour,
		PreferenceTTL: 30 * 24 * time.Hour,
		MaxTurns:      10,
		MaxTurnAge:    12 * time.Hour,
	}
}
