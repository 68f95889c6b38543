package qa

import (
	"context"

	"golang.org/x/sync/errgroup"

	"paperqa/internal/generate"
	"paperqa/internal/reference"
)

// Output is everything one request produces: the question echoed back, one
// tagged answer per configured model in registry order, and the extracted
// reference list.
type Output struct {
	Question   string            `json:"question"`
	Answers    []generate.Result `json:"answers"`
	References []string          `json:"references"`
}

// Service runs the per-request pipeline: reference extraction once, then one
// generation per configured model. Stateless and safe for concurrent use.
type Service struct {
	gen *generate.Generator
}

// New builds the service over a generator.
func New(gen *generate.Generator) *Service {
	return &Service{gen: gen}
}

// Process answers question over documentText with every configured model.
// The model calls are independent (read-only shared backends, disjoint
// outputs) and fan out concurrently. A failed generation becomes a tagged
// entry; it never stops the other models or the request, so the answer set
// always has exactly one entry per model.
func (s *Service) Process(ctx context.Context, documentText, question string, opts generate.Options) Output {
	keys := s.gen.Registry().Keys()
	answers := make([]generate.Result, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			answers[i] = s.gen.Generate(gctx, key, documentText, question, opts)
			return nil
		})
	}
	_ = g.Wait() // goroutines only write their own slot and never error

	return Output{
		Question:   question,
		Answers:    answers,
		References: reference.Extract(documentText),
	}
}
