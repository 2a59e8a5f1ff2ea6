package memory

import (
	"context"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxTurns = 3
	return cfg
}

func TestNewDefaults(t *testing.T) {
	t.Run("zero config gets every default", func(t *testing.T) {
		a := New(nil, nil, Config{}, &mockLogger{})
		if a.cfg != DefaultConfig() {
			t.Errorf("expected default config, got %+v", a.cfg)
		}
	})

	t.Run("set fields survive partial config", func(t *testing.T) {
		a := New(nil, nil, Config{MaxTurnAge: time.Hour}, &mockLogger{})
		if a.cfg.MaxTurnAge != time.Hour {
			t.Errorf("expected caller MaxTurnAge kept, got %s", a.cfg.MaxTurnAge)
		}
		if a.cfg.MaxTurns != DefaultConfig().MaxTurns {
			t.Errorf("expected default MaxTurns, got %d", a.cfg.MaxTurns)
		}
		if a.cfg.SessionTTL != DefaultConfig().SessionTTL {
			t.Errorf("expected default SessionTTL, got %s", a.cfg.SessionTTL)
		}
	})
}

func TestAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		a := New(newFakeKV(), newFakeDurable(), testConfig(), &mockLogger{})

		err := a.SaveTurn(ctx, "s1", "u1", Turn{
			Query:     "show sales by region",
			Summary:   "sales summary",
			Category:  "descriptive",
			Providers: []string{"database_query"},
			At:        time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cc, err := a.LoadContext(ctx, "s1", "compare sales across regions")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cc.Turns) != 1 {
			t.Fatalf("expected 1 turn, got %d", len(cc.Turns))
		}
		if cc.Continuity <= 0 {
			t.Errorf("expected positive continuity for overlapping topic, got %f", cc.Continuity)
		}
		if got := cc.RecentProviders(); len(got) != 1 || got[0] != "database_query" {
			t.Errorf("unexpected recent providers %v", got)
		}
	})

	t.Run("kv failure degrades to empty context", func(t *testing.T) {
		kv := newFakeKV()
		kv.failing = true
		a := New(kv, newFakeDurable(), testConfig(), &mockLogger{})

		cc, err := a.LoadContext(ctx, "s2", "anything")
		if err == nil {
			t.Error("expected an error for diagnostics")
		}
		if len(cc.Turns) != 0 {
			t.Errorf("expected empty context, got %d turns", len(cc.Turns))
		}
	})

	t.Run("nil stores are tolerated", func(t *testing.T) {
		a := New(nil, nil, testConfig(), &mockLogger{})

		cc, err := a.LoadContext(ctx, "s3", "anything")
		if err != nil || len(cc.Turns) != 0 {
			t.Errorf("expected empty context without error, got %v / %d turns", err, len(cc.Turns))
		}
		if err := a.SaveTurn(ctx, "s3", "u3", Turn{At: time.Now()}); err != nil {
			t.Errorf("save should be a no-op, got %v", err)
		}
	})

	t.Run("window bounds turns", func(t *testing.T) {
		a := New(newFakeKV(), nil, testConfig(), &mockLogger{})

		for i := 0; i < 5; i++ {
			if err := a.SaveTurn(ctx, "s4", "", Turn{Query: "q", At: time.Now()}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		cc, _ := a.LoadContext(ctx, "s4", "q")
		if len(cc.Turns) != 3 {
			t.Errorf("expected window of 3 turns, got %d", len(cc.Turns))
		}
	})

	t.Run("stale turns fall out of the window", func(t *testing.T) {
		a := New(newFakeKV(), nil, testConfig(), &mockLogger{})

		old := Turn{Query: "old", At: time.Now().Add(-24 * time.Hour)}
		fresh := Turn{Query: "fresh", At: time.Now()}
		if err := a.SaveTurn(ctx, "s5", "", old); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := a.SaveTurn(ctx, "s5", "", fresh); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cc, _ := a.LoadContext(ctx, "s5", "fresh")
		if len(cc.Turns) != 1 || cc.Turns[0].Query != "fresh" {
			t.Errorf("expected only the fresh turn, got %+v", cc.Turns)
		}
	})

	t.Run("preferences aggregate categories", func(t *testing.T) {
		durable := newFakeDurable()
		a := New(newFakeKV(), durable, testConfig(), &mockLogger{})

		for _, cat := range []string{"trend", "trend", "anomaly"} {
			err := a.SaveTurn(ctx, "s6", "u6", Turn{Query: "q", Category: cat, At: time.Now()})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		profile, err := a.Preferences(ctx, "u6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.CategoryCounts["trend"] != 2 {
			t.Errorf("expected 2 trend turns, got %d", profile.CategoryCounts["trend"])
		}
		if profile.Dominant() != "trend" {
			t.Errorf("expected dominant trend, got %q", profile.Dominant())
		}
	})
}

func TestContinuityScore(t *testing.T) {
	turns := []Turn{{Query: "monthly sales revenue by region", Summary: "sales went up"}}

	t.Run("overlap scores above zero", func(t *testing.T) {
		if s := continuityScore("what about sales last month", turns); s <= 0 {
			t.Errorf("expected positive score, got %f", s)
		}
	})

	t.Run("unrelated query scores zero", func(t *testing.T) {
		if s := continuityScore("kubernetes cluster health", turns); s != 0 {
			t.Errorf("expected zero score, got %f", s)
		}
	})

	t.Run("empty inputs score zero", func(t *testing.T) {
		if s := continuityScore("", turns); s != 0 {
			t.Errorf("expected zero for empty query, got %f", s)
		}
		if s := continuityScore("sales", nil); s != 0 {
			t.Errorf("expected zero for no turns, got %f", s)
		}
	})
}
