package qa

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"paperqa/internal/generate"
	"paperqa/internal/model"
	"paperqa/internal/reference"
	"paperqa/internal/tokenizer"
)

func newService(backend generate.Backend) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := generate.New(model.Default(1024), backend, tokenizer.New("no-such-encoding"), log)
	return New(gen)
}

func TestProcessOneAnswerPerModel(t *testing.T) {
	backend := &generate.MockBackend{}
	backend.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("an answer", nil).Times(3)

	out := newService(backend).Process(context.Background(), "doc text", "why?", generate.Options{})

	if len(out.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(out.Answers))
	}
	wantOrder := []string{"bart", "gpt2", "gpt_neo"}
	for i, a := range out.Answers {
		if a.Model != wantOrder[i] {
			t.Errorf("answer %d model = %q, want %q", i, a.Model, wantOrder[i])
		}
	}
	if out.Question != "why?" {
		t.Errorf("question = %q", out.Question)
	}
	backend.AssertExpectations(t)
}

func TestProcessPartialFailureStillComplete(t *testing.T) {
	backend := &generate.MockBackend{}
	backend.On("Generate", mock.Anything, mock.MatchedBy(func(d model.Descriptor) bool {
		return d.Key == "gpt2"
	}), mock.Anything, mock.Anything).Return("", errors.New("out of memory")).Once()
	backend.On("Generate", mock.Anything, mock.MatchedBy(func(d model.Descriptor) bool {
		return d.Key != "gpt2"
	}), mock.Anything, mock.Anything).Return("fine", nil).Times(2)

	out := newService(backend).Process(context.Background(), "doc", "q", generate.Options{})

	if len(out.Answers) != 3 {
		t.Fatalf("expected 3 answers despite failure, got %d", len(out.Answers))
	}
	var failed, succeeded int
	for _, a := range out.Answers {
		if a.Failed() {
			failed++
			if !strings.HasPrefix(a.Display(), "Error generating answer: ") {
				t.Errorf("failed entry rendered as %q", a.Display())
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 2 {
		t.Errorf("failed=%d succeeded=%d, want 1/2", failed, succeeded)
	}
}

func TestProcessAllFailuresStillComplete(t *testing.T) {
	backend := &generate.MockBackend{}
	backend.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("backend down")).Times(3)

	out := newService(backend).Process(context.Background(), "doc", "q", generate.Options{})
	if len(out.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(out.Answers))
	}
	for _, a := range out.Answers {
		if !a.Failed() {
			t.Errorf("expected failure for %s", a.Model)
		}
	}
}

func TestProcessExtractsReferences(t *testing.T) {
	backend := &generate.MockBackend{}
	backend.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil).Times(3)

	doc := "Findings.\n\n[1] Smith 2019.\n\n[2] Doe 2020."
	out := newService(backend).Process(context.Background(), doc, "q", generate.Options{})
	if len(out.References) != 2 {
		t.Fatalf("expected 2 references, got %v", out.References)
	}

	out = newService(backendWithOK(3)).Process(context.Background(), "no citations here", "q", generate.Options{})
	if len(out.References) != 1 || out.References[0] != reference.NoneFound {
		t.Errorf("expected sentinel, got %v", out.References)
	}
}

func backendWithOK(n int) *generate.MockBackend {
	b := &generate.MockBackend{}
	b.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil).Times(n)
	return b
}
