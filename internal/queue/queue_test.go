package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

func TestEnqueueWithRetryEventualSuccess(t *testing.T) {
	q := &MockQueue{}
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("nats down")).Twice()
	q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	err := EnqueueWithRetry(context.Background(), q, Task{Type: TaskTypeGenerate}, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	q.AssertExpectations(t)
}

func TestEnqueueWithRetryExhausted(t *testing.T) {
	q := &MockQueue{}
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("nats down")).Times(3)

	err := EnqueueWithRetry(context.Background(), q, Task{Type: TaskTypeGenerate}, 3, time.Millisecond)
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
}

func TestEnqueueWithRetryContextCancelled(t *testing.T) {
	q := &MockQueue{}
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("nats down"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := EnqueueWithRetry(ctx, q, Task{Type: TaskTypeGenerate}, 5, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
