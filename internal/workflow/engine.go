package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"insight-engine/internal/insight"
	"insight-engine/internal/model"
)

// Process runs exactly one pass through the ordered stages. Only an
// empty query aborts the pipeline; every other failure degrades into a
// diagnostic and the response is still produced.
func (e *Engine) Process(ctx context.Context, sc model.Scope, input insight.ProcessInput) (insight.Response, error) {
	started := time.Now()
	requestID := uuid.NewString()

	text := strings.TrimSpace(input.Query)
	if text == "" {
		return insight.Response{}, insight.ErrEmptyQuery
	}

	runCtx, cancel := context.WithTimeout(ctx, e.cfg.HardTimeout)
	defer cancel()

	st := &State{
		Query: insight.Query{
			Text:        text,
			SessionID:   sc.SessionID,
			UserID:      sc.UserID,
			FormatHints: input.FormatHints,
		},
	}

	e.l.Infof(runCtx, "%s: request %s session %s: %q", LogPrefixProcess, requestID, sc.SessionID, text)

	// Stage 1 — AnalyzeQuery. Pure, cannot fail past the empty check.
	e.analyzeQuery(st)

	// Stage 2 — RetrieveContext. Unreachable memory degrades to empty
	// context.
	e.retrieveContext(runCtx, st)

	// Stage 3 — DecomposeTask.
	e.decomposeTask(runCtx, st)

	// Stage 4 — EnhanceWithTools. Parallel fan-out with bounded wait.
	vizSelected := false
	if !e.timedOut(ctx, runCtx, st, StageEnhanceWithTools) {
		vizSelected = e.enhanceWithTools(runCtx, st) || planNeedsChart(st.Plan)
	}

	// Stage 5 — ProcessData.
	if !e.timedOut(ctx, runCtx, st, StageProcessData) {
		e.processData(runCtx, st)
	}

	// Stage 6 — SynthesizeResult.
	if !e.timedOut(ctx, runCtx, st, StageSynthesizeResult) {
		e.synthesizeResult(runCtx, st, vizSelected)
	}
	if st.Text == "" {
		st.Text = "The request could not be completed in time; partial diagnostics are attached."
	}

	// Stage 7 — UpdateMemory. Never fails the request.
	e.updateMemory(runCtx, st)

	// Caller cancellation discards partial analysis instead of returning
	// it.
	if ctx.Err() != nil {
		return insight.Response{}, ctx.Err()
	}

	resp := insight.Response{
		RequestID:       requestID,
		Text:            st.Text,
		Analysis:        st.Analysis,
		ToolResults:     st.ToolResults,
		Recommendations: st.Recommendations,
		Diagnostics:     st.Diagnostics,
		DurationMs:      time.Since(started).Milliseconds(),
	}

	e.l.Infof(runCtx, "%s: request %s done in %dms with %d tool result(s), %d diagnostic(s)",
		LogPrefixProcess, requestID, resp.DurationMs, len(resp.ToolResults), len(resp.Diagnostics))
	return resp, nil
}

// timedOut reports whether the hard timeout already fired, recording a
// diagnostic for the stage that was skipped. Analysis computed so far is
// discarded when the caller itself went away.
func (e *Engine) timedOut(parent, runCtx context.Context, st *State, stage string) bool {
	if runCtx.Err() == nil {
		return false
	}
	if parent.Err() != nil {
		st.Analysis = nil
		return true
	}
	st.addDiagnostic(stage, "skipped: hard timeout exceeded")
	return true
}

// retrieveContext loads the session window; store failure degrades to an
// empty context with a diagnostic.
func (e *Engine) retrieveContext(ctx context.Context, st *State) {
	if e.memory == nil {
		return
	}
	cc, err := e.memory.LoadContext(ctx, st.Query.SessionID, st.Query.Text)
	if err != nil {
		e.l.Warnf(ctx, "%s: %v", LogPrefixRetrieveContext, err)
		st.addDiagnostic(StageRetrieveContext, "context retrieval degraded: "+err.Error())
		return
	}
	st.Context = cc
}
