package generate

import (
	"context"

	"paperqa/internal/model"
)

// Decoding parameters shared by every generation call. Beam search keeps the
// top beams by score at each step and stops once all beams hit a terminal
// token; the length penalty above 1 favors longer completions.
const (
	DefaultMaxLength = 1500
	DefaultMinLength = 700

	numBeams      = 5
	lengthPenalty = 1.5
	earlyStopping = true
)

// Options bound the generated sequence length in token units. MinLength must
// stay below MaxLength; that is the caller's responsibility.
type Options struct {
	MaxLength int
	MinLength int
}

// withDefaults fills unset bounds with the long-form answer defaults.
func (o Options) withDefaults() Options {
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultMaxLength
	}
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinLength
	}
	return o
}

// Backend runs one bounded generation against an inference provider.
type Backend interface {
	Generate(ctx context.Context, desc model.Descriptor, prompt string, opts Options) (string, error)
}
