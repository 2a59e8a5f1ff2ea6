package workflow

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		if got := truncate("hello", 10); got != "hello" {
			t.Errorf("expected hello, got %q", got)
		}
	})

	t.Run("long string cut to limit", func(t *testing.T) {
		got := truncate(strings.Repeat("a", 200), 160)
		if len(got) != 160 {
			t.Errorf("expected 160 bytes, got %d", len(got))
		}
	})

	t.Run("never splits a rune", func(t *testing.T) {
		s := strings.Repeat("é", 100) // 2 bytes each
		got := truncate(s, 7)
		if !utf8.ValidString(got) {
			t.Fatalf("truncated string is not valid UTF-8: %q", got)
		}
		if len(got) != 6 {
			t.Errorf("expected cut at rune boundary (6 bytes), got %d", len(got))
		}
	})
}
