package tokenizer

import (
	"strings"
	"testing"
)

// newFallback forces the word-count path so tests stay deterministic and
// offline.
func newFallback(t *testing.T) *Tokenizer {
	t.Helper()
	tok := New("no-such-encoding")
	if tok.enc != nil {
		t.Fatal("expected fallback tokenizer")
	}
	return tok
}

func TestCountFallback(t *testing.T) {
	tok := newFallback(t)
	if got := tok.Count("one two  three\nfour"); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	if got := tok.Count(""); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
}

func TestTruncateUnderLimitUnchanged(t *testing.T) {
	tok := newFallback(t)
	text := "short prompt that fits"
	if got := tok.Truncate(text, 10); got != text {
		t.Errorf("Truncate changed text under limit: %q", got)
	}
}

func TestTruncateDropsTrailingContent(t *testing.T) {
	tok := newFallback(t)
	text := "w1 w2 w3 w4 w5 w6"
	got := tok.Truncate(text, 3)
	if got != "w1 w2 w3" {
		t.Errorf("Truncate = %q, want %q", got, "w1 w2 w3")
	}
	if tok.Count(got) != 3 {
		t.Errorf("truncated count = %d, want 3", tok.Count(got))
	}
}

func TestTruncateZeroLimitPassthrough(t *testing.T) {
	tok := newFallback(t)
	text := strings.Repeat("x ", 50)
	if got := tok.Truncate(text, 0); got != text {
		t.Error("zero limit should disable truncation")
	}
}
