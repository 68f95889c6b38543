package generate

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"paperqa/internal/model"
)

// BreakerBackend wraps another backend in a circuit breaker so a failing
// inference server sheds load instead of absorbing every request's full
// timeout. After three consecutive failures the circuit opens for 30 seconds,
// then lets two probe calls through before closing again.
type BreakerBackend struct {
	inner   Backend
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerBackend wraps inner with the default breaker settings.
func NewBreakerBackend(inner Backend) *BreakerBackend {
	return &BreakerBackend{
		inner: inner,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "inference",
			MaxRequests: 2,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

func (b *BreakerBackend) Generate(ctx context.Context, desc model.Descriptor, prompt string, opts Options) (string, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Generate(ctx, desc, prompt, opts)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
