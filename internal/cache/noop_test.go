package cache

import (
	"context"
	"testing"
	"time"

	"paperqa/internal/qa"
)

func TestNoopCacheAlwaysMisses(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	if err := c.SetResult(ctx, "k", &qa.Output{Question: "q"}, time.Minute); err != nil {
		t.Fatalf("SetResult: %v", err)
	}
	out, err := c.GetResult(ctx, "k")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if out != nil {
		t.Error("noop cache returned a hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestKeyStableAndSeparated(t *testing.T) {
	if Key("q", "doc") != Key("q", "doc") {
		t.Error("key not deterministic")
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("key collides across the question/document boundary")
	}
	if Key("q1", "doc") == Key("q2", "doc") {
		t.Error("key ignores the question")
	}
}
