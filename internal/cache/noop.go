package cache

import (
	"context"
	"time"

	"paperqa/internal/qa"
)

// NoopCache misses on every lookup and discards every write. Used when
// caching is disabled.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) GetResult(ctx context.Context, key string) (*qa.Output, error) {
	return nil, nil
}

func (c *NoopCache) SetResult(ctx context.Context, key string, out *qa.Output, ttl time.Duration) error {
	return nil
}

func (c *NoopCache) Close() error {
	return nil
}
