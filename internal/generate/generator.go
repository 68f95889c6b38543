package generate

import (
	"context"
	"fmt"
	"log/slog"

	"paperqa/internal/model"
	"paperqa/internal/tokenizer"
)

// errorPrefix is the in-band form failed generations take when rendered;
// the response always carries one entry per model, failed or not.
const errorPrefix = "Error generating answer: "

// Result is the tagged outcome of one generation. Exactly one of Text and
// Err is meaningful.
type Result struct {
	Model string `json:"model"`
	Text  string `json:"text,omitempty"`
	Err   string `json:"error,omitempty"`
}

// Failed reports whether the generation produced an error instead of text.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Display renders the result for presentation: the answer text, or the
// in-band error form for failed generations.
func (r Result) Display() string {
	if r.Failed() {
		return errorPrefix + r.Err
	}
	return r.Text
}

// Generator produces one answer per call by prompting a configured model
// through the backend. Safe for concurrent use; no state is retained between
// calls.
type Generator struct {
	registry *model.Registry
	backend  Backend
	tok      *tokenizer.Tokenizer
	log      *slog.Logger
}

// New builds a generator over the given registry and backend.
func New(registry *model.Registry, backend Backend, tok *tokenizer.Tokenizer, log *slog.Logger) *Generator {
	return &Generator{registry: registry, backend: backend, tok: tok, log: log}
}

// Registry exposes the configured model set.
func (g *Generator) Registry() *model.Registry {
	return g.registry
}

// Generate answers question over documentText with the model named by key.
// The prompt is truncated to the model's context limit before the call;
// truncation drops trailing document text, never the question, since the
// question leads the prompt. Backend failures never escape: they come back
// as a tagged Result.
func (g *Generator) Generate(ctx context.Context, key, documentText, question string, opts Options) Result {
	desc, ok := g.registry.Get(key)
	if !ok {
		return Result{Model: key, Err: fmt.Sprintf("unknown model %q", key)}
	}
	opts = opts.withDefaults()

	prompt := fmt.Sprintf("Research Question: %s\n\nContext: %s", question, documentText)
	prompt = g.tok.Truncate(prompt, desc.ContextLimit)

	text, err := g.backend.Generate(ctx, desc, prompt, opts)
	if err != nil {
		g.log.Error("generation failed", "model", key, "err", err)
		return Result{Model: key, Err: err.Error()}
	}
	return Result{Model: key, Text: text}
}
