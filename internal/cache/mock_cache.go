package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"paperqa/internal/qa"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetResult(ctx context.Context, key string) (*qa.Output, error) {
	args := m.Called(ctx, key)
	var out *qa.Output
	if v := args.Get(0); v != nil {
		out = v.(*qa.Output)
	}
	return out, args.Error(1)
}

func (m *MockCache) SetResult(ctx context.Context, key string, out *qa.Output, ttl time.Duration) error {
	args := m.Called(ctx, key, out, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
