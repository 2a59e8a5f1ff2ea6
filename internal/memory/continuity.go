package memory

import "strings"

// Words that carry no topical signal and are excluded from the overlap.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "by": true,
	"for": true, "from": true, "how": true, "in": true, "is": true,
	"it": true, "me": true, "my": true, "of": true, "on": true,
	"or": true, "show": true, "the": true, "this": true, "to": true,
	"what": true, "which": true, "with": true,
}

// continuityScore measures topical overlap between the current query and
// the recent turns as Jaccard similarity over word sets, stop words
// removed. Returns 0 with no usable words on either side.
func continuityScore(query string, turns []Turn) float64 {
	current := wordSet(query)
	if len(current) == 0 || len(turns) == 0 {
		return 0
	}

	var prior strings.Builder
	for _, turn := range turns {
		prior.WriteString(turn.Query)
		prior.WriteString(" ")
		prior.WriteString(turn.Summary)
		prior.WriteString(" ")
	}
	previous := wordSet(prior.String())
	if len(previous) == 0 {
		return 0
	}

	intersection := 0
	for w := range current {
		if previous[w] {
			intersection++
		}
	}
	union := len(current) + len(previous) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) < 2 || stopWords[w] {
			continue
		}
		set[w] = true
	}
	return set
}
