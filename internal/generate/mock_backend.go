package generate

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperqa/internal/model"
)

// MockBackend is a mock implementation of Backend using testify/mock.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Generate(ctx context.Context, desc model.Descriptor, prompt string, opts Options) (string, error) {
	args := m.Called(ctx, desc, prompt, opts)
	return args.String(0), args.Error(1)
}
