package workflow

import (
	"context"
	"time"
	"unicode/utf8"

	"insight-engine/internal/memory"
)

const summaryLimit = 160

// updateMemory writes the session summary and preference signal back
// through the memory adapter. Failure is logged and recorded as a
// diagnostic but never fails the request; the response is already
// computed.
func (e *Engine) updateMemory(ctx context.Context, st *State) {
	if e.memory == nil {
		return
	}

	turn := memory.Turn{
		Query:     st.Query.Text,
		Summary:   truncate(st.Text, summaryLimit),
		Category:  string(st.Intent.Category),
		Providers: successfulProviders(st),
		At:        time.Now(),
	}

	if err := e.memory.SaveTurn(ctx, st.Query.SessionID, st.Query.UserID, turn); err != nil {
		e.l.Warnf(ctx, "%s: %v", LogPrefixUpdateMemory, err)
		st.addDiagnostic(StageUpdateMemory, "memory write degraded: "+err.Error())
	}
}

func successfulProviders(st *State) []string {
	var names []string
	for _, res := range st.ToolResults {
		if res.OK() {
			names = append(names, res.Provider)
		}
	}
	return names
}

// truncate cuts s to at most limit bytes without splitting a multi-byte
// rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
