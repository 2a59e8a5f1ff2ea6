package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"insight-engine/pkg/gemini"
)

func TestBuildNarrativePrompt(t *testing.T) {
	query := "how did revenue move last quarter"
	findings := "trend: increasing, slope 4.2"

	prompt := gemini.BuildNarrativePrompt(query, findings)

	if !strings.Contains(prompt, query) {
		t.Errorf("prompt missing source question")
	}
	if !strings.Contains(prompt, findings) {
		t.Errorf("prompt missing computed findings")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		if _, err := gemini.New(gemini.Config{}); err == nil {
			t.Fatalf("expected error for missing API key")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg := gemini.Config{APIKey: "test-api-key"}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != gemini.DefaultModel {
			t.Errorf("expected default model, got %s", cfg.Model)
		}
		if cfg.APIURL != gemini.DefaultAPIURL {
			t.Errorf("expected default URL, got %s", cfg.APIURL)
		}
		if cfg.HTTPClient == nil {
			t.Errorf("expected default HTTP client")
		}
	})
}

func TestClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Read mock command
		contents := req["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		text := parts[0].(map[string]any)["text"].(string)
		if text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [
							{ "text": "mocked response string" }
						],
						"role": "model"
					}
				}
			],
			"usageMetadata": { "promptTokenCount": 12, "candidatesTokenCount": 7, "totalTokenCount": 19 }
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		req := &gemini.Request{
			Messages: []gemini.Content{
				{Role: "user", Parts: []gemini.Part{{Text: "Hello world"}}},
			},
		}

		resp, err := client.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Content.Parts) != 1 {
			t.Fatalf("expected 1 part")
		}
		if resp.Content.Parts[0].Text != "mocked response string" {
			t.Errorf("unexpected content response: %s", resp.Content.Parts[0].Text)
		}
		if resp.Usage.TotalTokens != 19 {
			t.Errorf("unexpected token usage: %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		req := &gemini.Request{
			Messages: []gemini.Content{
				{Parts: []gemini.Part{{Text: "cause_500"}}},
			},
		}

		_, err := client.GenerateContent(context.Background(), req)
		if err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})
}
