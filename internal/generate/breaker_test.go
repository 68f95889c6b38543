package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"paperqa/internal/model"
)

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &MockBackend{}
	inner.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("fine", nil).Once()

	b := NewBreakerBackend(inner)
	text, err := b.Generate(context.Background(), model.Descriptor{Key: "bart"}, "p", Options{})
	if err != nil || text != "fine" {
		t.Fatalf("got (%q, %v)", text, err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &MockBackend{}
	inner.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("backend down")).Times(3)

	b := NewBreakerBackend(inner)
	ctx := context.Background()
	desc := model.Descriptor{Key: "gpt2"}

	for i := 0; i < 3; i++ {
		if _, err := b.Generate(ctx, desc, "p", Options{}); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}

	// Circuit is open now; inner must not see this call.
	if _, err := b.Generate(ctx, desc, "p", Options{}); err == nil {
		t.Fatal("expected open-circuit error")
	}
	inner.AssertNumberOfCalls(t, "Generate", 3)
}
