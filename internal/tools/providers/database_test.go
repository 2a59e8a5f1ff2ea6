package providers

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *DatabaseProvider {
	t.Helper()

	p, err := NewDatabaseProvider(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	if err := p.Seed(context.Background(), "sales", []float64{10, 20, 30, 40}); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return p
}

func TestDatabaseProvider(t *testing.T) {
	p := newTestDatabase(t)

	t.Run("query returns tabular payload", func(t *testing.T) {
		payload, err := p.Invoke(context.Background(), "query", map[string]any{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tab, ok := payload.(TabularPayload)
		if !ok {
			t.Fatalf("expected TabularPayload, got %T", payload)
		}
		if len(tab.Rows) != 4 {
			t.Errorf("expected 4 rows, got %d", len(tab.Rows))
		}
		if v, ok := tab.Rows[0]["value"].(float64); !ok || v != 10 {
			t.Errorf("expected first value 10, got %v", tab.Rows[0]["value"])
		}
	})

	t.Run("metric filter", func(t *testing.T) {
		payload, err := p.Invoke(context.Background(), "query", map[string]any{"metric": "missing"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tab := payload.(TabularPayload); len(tab.Rows) != 0 {
			t.Errorf("expected no rows for unknown metric, got %d", len(tab.Rows))
		}
	})

	t.Run("limit bounds the rows", func(t *testing.T) {
		payload, err := p.Invoke(context.Background(), "query", map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tab := payload.(TabularPayload)
		if len(tab.Rows) != 2 {
			t.Fatalf("expected 2 rows with limit 2, got %d", len(tab.Rows))
		}
		if v := tab.Rows[1]["value"].(float64); v != 20 {
			t.Errorf("expected oldest rows first, got value %v", v)
		}
	})

	t.Run("from bounds the time range", func(t *testing.T) {
		from := time.Now().Add(-49 * time.Hour).Unix()
		payload, err := p.Invoke(context.Background(), "query", map[string]any{"from": from, "limit": 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tab := payload.(TabularPayload)
		if len(tab.Rows) != 2 {
			t.Fatalf("expected 2 rows within the last ~2 days, got %d", len(tab.Rows))
		}
		for _, row := range tab.Rows {
			if ts := row["ts"].(float64); ts < float64(from) {
				t.Errorf("row ts %v predates from %d", ts, from)
			}
		}
	})

	t.Run("to bounds the time range", func(t *testing.T) {
		to := time.Now().Add(-71 * time.Hour).Unix()
		payload, err := p.Invoke(context.Background(), "query", map[string]any{"to": to})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tab := payload.(TabularPayload)
		if len(tab.Rows) != 2 {
			t.Fatalf("expected 2 rows before the cutoff, got %d", len(tab.Rows))
		}
		for _, row := range tab.Rows {
			if ts := row["ts"].(float64); ts > float64(to) {
				t.Errorf("row ts %v exceeds to %d", ts, to)
			}
		}
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		if err := p.Seed(context.Background(), "sales", []float64{1, 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payload, _ := p.Invoke(context.Background(), "query", map[string]any{})
		if tab := payload.(TabularPayload); len(tab.Rows) != 4 {
			t.Errorf("second seed should be a no-op, got %d rows", len(tab.Rows))
		}
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		if _, err := p.Invoke(context.Background(), "drop", nil); err == nil {
			t.Error("expected error for unsupported method")
		}
	})
}
