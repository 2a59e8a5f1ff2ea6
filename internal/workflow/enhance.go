package workflow

import (
	"context"
	"fmt"

	"insight-engine/internal/insight"
)

// Provider names the engine knows how to parameterize.
const (
	providerDatabase      = "database_query"
	providerDocSearch     = "doc_search"
	providerWebSearch     = "web_search"
	providerVisualization = "visualization"
	providerFileData      = "file_data"
)

// enhanceWithTools asks the selector for relevant providers and dispatches
// them in parallel. Individual failures become typed partial results and
// diagnostics; the stage itself never fails. The visualization provider is
// held back here: it consumes computed analysis values, so the engine
// dispatches it after ProcessData instead.
func (e *Engine) enhanceWithTools(ctx context.Context, st *State) bool {
	selections := e.registry.Select(st.Query.Text, st.Intent, st.Context.RecentProviders())
	if len(selections) == 0 {
		st.addDiagnostic(StageEnhanceWithTools, insight.ErrNoProviders.Error())
		return false
	}

	vizSelected := false
	var invs []insight.Invocation
	for _, sel := range selections {
		if sel.Provider == providerVisualization {
			vizSelected = true
			continue
		}
		inv, ok := e.buildInvocation(sel.Provider, sel.Tier, st)
		if !ok {
			continue
		}
		invs = append(invs, inv)
	}

	st.ToolResults = e.dispatcher.Dispatch(ctx, invs)
	for _, res := range st.ToolResults {
		if !res.OK() {
			st.addDiagnostic(StageEnhanceWithTools,
				fmt.Sprintf("tool %s failed: %s (%s)", res.Provider, res.Failure, res.Err))
		}
	}
	return vizSelected
}

func (e *Engine) buildInvocation(provider string, tier insight.RelevanceTier, st *State) (insight.Invocation, bool) {
	inv := insight.Invocation{Provider: provider, Tier: tier}

	switch provider {
	case providerDatabase:
		inv.Method = "query"
		inv.Params = fetchParams(st.Intent)
	case providerDocSearch, providerWebSearch:
		inv.Method = "search"
		inv.Params = map[string]any{"query": st.Query.Text}
	case providerFileData:
		if e.cfg.DatasetPath == "" {
			return insight.Invocation{}, false
		}
		inv.Method = "read"
		inv.Params = map[string]any{"file": e.cfg.DatasetPath}
	default:
		// Unknown providers are invoked with the raw query so custom
		// registrations still work.
		inv.Method = "query"
		inv.Params = map[string]any{"query": st.Query.Text}
	}
	return inv, true
}
