package gemini

// NarrativeSystemPrompt is the system instruction sent to Gemini when
// rephrasing computed analysis findings into a short narrative answer.
const NarrativeSystemPrompt = `You are an analytics writing assistant. You receive a user's question together with findings that were already computed: summary statistics, detected outliers, correlations, and trend estimates.

RULES:
1. Restate the findings in two to four plain sentences addressed to the user.
2. Use only the numbers given to you. Never invent, extrapolate, or recompute values.
3. Mention the most significant finding first (a detected trend or outlier beats a plain average).
4. Round displayed numbers to two decimal places.
5. Return plain text only. No markdown, no code blocks, no bullet lists.`

// BuildNarrativePrompt builds the full user prompt for narrative phrasing.
func BuildNarrativePrompt(query string, findings string) string {
	return "QUESTION:\n" + query + "\n\nCOMPUTED FINDINGS:\n" + findings + "\n\nNow write the narrative answer:"
}
