package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateRequest(ctx context.Context, filename, question string) (Request, error) {
	args := m.Called(ctx, filename, question)
	return args.Get(0).(Request), args.Error(1)
}

func (m *MockStore) GetRequest(ctx context.Context, id uuid.UUID) (Request, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Request), args.Error(1)
}

func (m *MockStore) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStore) SaveResult(ctx context.Context, res Result) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockStore) GetResult(ctx context.Context, id uuid.UUID) (Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Result), args.Error(1)
}
