package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"paperqa/internal/qa"
)

// Cache stores completed answer sets so identical question/document pairs
// skip the model calls. Lookups and writes are best-effort: a cache failure
// never fails the request.
type Cache interface {
	// GetResult retrieves a cached answer set by key; nil means miss.
	GetResult(ctx context.Context, key string) (*qa.Output, error)

	// SetResult stores an answer set with TTL.
	SetResult(ctx context.Context, key string, out *qa.Output, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a stable cache key from the question and the full document
// text. The NUL separator keeps ("ab","c") and ("a","bc") distinct.
func Key(question, documentText string) string {
	h := sha256.New()
	h.Write([]byte(question))
	h.Write([]byte{0})
	h.Write([]byte(documentText))
	return hex.EncodeToString(h.Sum(nil))
}
