package tools

import (
	"sort"
	"strings"

	"insight-engine/internal/insight"
)

// Scoring weights. The three signals are each normalized to [0,1] and
// combined into a single [0,1] relevance score.
const (
	weightKeywords = 0.50
	weightAffinity = 0.35
	weightContext  = 0.15
)

// Tier thresholds. Providers below thresholdMedium are excluded from the
// selection entirely, so callers must not assume the returned list covers
// every registered provider.
const (
	thresholdHigh   = 0.60
	thresholdMedium = 0.25
)

// Select scores every registered provider against the query and intent
// and returns the high and medium tiers, ordered by descending score with
// registration order breaking ties. recentProviders lists providers that
// succeeded in the session's recent context and earn a boost.
func (r *Registry) Select(queryText string, intent insight.Intent, recentProviders []string) []Selection {
	lowered := strings.ToLower(queryText)

	recent := make(map[string]bool, len(recentProviders))
	for _, name := range recentProviders {
		recent[name] = true
	}

	type scored struct {
		sel   Selection
		order int
	}
	var candidates []scored

	for order, p := range r.providers {
		score := weightKeywords*keywordScore(lowered, p.Keywords()) +
			weightAffinity*p.Affinities()[intent.Category]
		if recent[p.Name()] {
			score += weightContext
		}

		tier := bucket(score)
		if tier == insight.TierLow {
			continue
		}

		candidates = append(candidates, scored{
			sel:   Selection{Provider: p.Name(), Score: score, Tier: tier},
			order: order,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].sel.Score != candidates[j].sel.Score {
			return candidates[i].sel.Score > candidates[j].sel.Score
		}
		return candidates[i].order < candidates[j].order
	})

	out := make([]Selection, len(candidates))
	for i, c := range candidates {
		out[i] = c.sel
	}
	return out
}

// keywordScore is the fraction of the provider's keywords contained in
// the query text, case-insensitive substring match.
func keywordScore(loweredQuery string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(loweredQuery, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

func bucket(score float64) insight.RelevanceTier {
	switch {
	case score >= thresholdHigh:
		return insight.TierHigh
	case score >= thresholdMedium:
		return insight.TierMedium
	default:
		return insight.TierLow
	}
}
