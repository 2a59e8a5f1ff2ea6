package http

import (
	"errors"

	"insight-engine/internal/insight"
)

// --- Request DTOs ---

type queryReq struct {
	Query       string   `json:"query"        binding:"required,max=2000"`
	SessionID   string   `json:"session_id"   binding:"omitempty,max=128"`
	UserID      string   `json:"user_id"      binding:"omitempty,max=128"`
	FormatHints []string `json:"format_hints" binding:"omitempty,max=5"`
}

func (r queryReq) validate() error {
	for _, hint := range r.FormatHints {
		switch hint {
		case "chart", "plot", "graph", "table", "text":
		default:
			return errors.New("unsupported format hint: " + hint)
		}
	}
	return nil
}

func (r queryReq) toInput() insight.ProcessInput {
	return insight.ProcessInput{
		Query:       r.Query,
		FormatHints: r.FormatHints,
	}
}

// --- Response DTOs ---

type toolResultResp struct {
	Provider  string `json:"provider"`
	Method    string `json:"method"`
	Payload   any    `json:"payload,omitempty"`
	Failure   string `json:"failure,omitempty"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type queryResp struct {
	RequestID       string           `json:"request_id"`
	SessionID       string           `json:"session_id"`
	Text            string           `json:"text"`
	Analysis        any              `json:"analysis,omitempty"`
	ToolResults     []toolResultResp `json:"tool_results,omitempty"`
	Recommendations []string         `json:"recommendations"`
	Diagnostics     []string         `json:"diagnostics"`
	DurationMs      int64            `json:"duration_ms"`
}

func newQueryResp(sessionID string, out insight.Response) queryResp {
	resp := queryResp{
		RequestID:       out.RequestID,
		SessionID:       sessionID,
		Text:            out.Text,
		Recommendations: out.Recommendations,
		Diagnostics:     out.Diagnostics,
		DurationMs:      out.DurationMs,
	}
	if out.Analysis != nil {
		resp.Analysis = out.Analysis
	}
	for _, tr := range out.ToolResults {
		resp.ToolResults = append(resp.ToolResults, toolResultResp{
			Provider:  tr.Provider,
			Method:    tr.Method,
			Payload:   tr.Payload,
			Failure:   string(tr.Failure),
			Error:     tr.Err,
			ElapsedMs: tr.Elapsed.Milliseconds(),
		})
	}
	return resp
}
