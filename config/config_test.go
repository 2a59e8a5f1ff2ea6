package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPServer.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.Mode != "debug" {
		t.Errorf("expected mode debug, got %s", cfg.HTTPServer.Mode)
	}
	if cfg.Workflow.HardTimeout != 30*time.Second {
		t.Errorf("expected 30s hard timeout, got %s", cfg.Workflow.HardTimeout)
	}
	if cfg.Memory.MaxTurns != 10 {
		t.Errorf("expected 10 max turns, got %d", cfg.Memory.MaxTurns)
	}

	if len(cfg.LLM.Providers) == 0 {
		t.Fatal("expected at least one llm provider entry")
	}
	p := cfg.LLM.Providers[0]
	if p.Name != "gemini" {
		t.Errorf("expected provider gemini, got %s", p.Name)
	}
	if p.Timeout != 30*time.Second {
		t.Errorf("expected 30s provider timeout, got %s", p.Timeout)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Run("plain value passes through", func(t *testing.T) {
		if got := expandEnvVar("literal"); got != "literal" {
			t.Errorf("expected literal, got %q", got)
		}
	})

	t.Run("reference resolves from environment", func(t *testing.T) {
		t.Setenv("INSIGHT_TEST_SECRET", "s3cret")
		if got := expandEnvVar("${INSIGHT_TEST_SECRET}"); got != "s3cret" {
			t.Errorf("expected s3cret, got %q", got)
		}
	})

	t.Run("unset reference becomes empty", func(t *testing.T) {
		if got := expandEnvVar("${INSIGHT_TEST_MISSING}"); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPServer: HTTPServerConfig{Port: 8080, Mode: "release"},
			Durable:    DurableConfig{Path: "insight.db"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := base().validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("bad port rejected", func(t *testing.T) {
		cfg := base()
		cfg.HTTPServer.Port = 0
		if err := cfg.validate(); err == nil {
			t.Error("expected error for port 0")
		}
	})

	t.Run("bad mode rejected", func(t *testing.T) {
		cfg := base()
		cfg.HTTPServer.Mode = "verbose"
		if err := cfg.validate(); err == nil {
			t.Error("expected error for unknown mode")
		}
	})

	t.Run("enabled provider without name rejected", func(t *testing.T) {
		cfg := base()
		cfg.LLM.Providers = []LLMProviderConfig{{Enabled: true}}
		if err := cfg.validate(); err == nil {
			t.Error("expected error for unnamed provider")
		}
	})
}
