package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paperqa/internal/app"
	"paperqa/internal/generate"
	"paperqa/internal/httputil"
	"paperqa/internal/queue"
	"paperqa/internal/store"
)

type generateTaskPayload struct {
	RequestID uuid.UUID `json:"request_id"`
	Question  string    `json:"question"`
	Text      string    `json:"text"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	if !deps.Async() {
		deps.Log.Error("worker requires STORE_PROVIDER and QUEUE_PROVIDER to be configured")
		os.Exit(1)
	}
	deps.Log.Info("answer worker starting")

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeGenerate, func(ctx context.Context, task queue.Task) error {
			var payload generateTaskPayload
			if err := json.Unmarshal(task.Payload, &payload); err != nil {
				return err
			}
			return handleGenerate(ctx, deps, payload)
		})
	})

	g.Go(func() error {
		return httputil.ServeHealth(deps, "worker")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("worker stopped", "err", err)
	}
}

func handleGenerate(ctx context.Context, deps app.Deps, payload generateTaskPayload) error {
	log := deps.Log.With("request_id", payload.RequestID)
	if err := deps.Store.UpdateRequestStatus(ctx, payload.RequestID, store.StatusProcessing); err != nil {
		return err
	}

	// Model failures arrive as tagged entries inside the output, so the task
	// itself only fails on store errors.
	out := deps.QA.Process(ctx, payload.Text, payload.Question, generate.Options{
		MaxLength: deps.Config.MaxLength,
		MinLength: deps.Config.MinLength,
	})

	answers := make([]store.Answer, len(out.Answers))
	for i, a := range out.Answers {
		answers[i] = store.Answer{Model: a.Model, Answer: a.Display()}
	}
	result := store.Result{
		RequestID:  payload.RequestID,
		Question:   out.Question,
		Answers:    answers,
		References: out.References,
	}
	if err := deps.Store.SaveResult(ctx, result); err != nil {
		if upErr := deps.Store.UpdateRequestStatus(ctx, payload.RequestID, store.StatusFailed); upErr != nil {
			log.Error("failed to mark request failed", "err", upErr)
		}
		return err
	}
	log.Info("request processed", "answers", len(result.Answers), "references", len(result.References))
	return deps.Store.UpdateRequestStatus(ctx, payload.RequestID, store.StatusDone)
}
