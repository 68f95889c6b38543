package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paperqa/internal/app"
	"paperqa/internal/cache"
	"paperqa/internal/extract"
	"paperqa/internal/generate"
	"paperqa/internal/httputil"
	"paperqa/internal/qa"
	"paperqa/internal/queue"
	"paperqa/internal/store"
)

// processRequest is the JSON form of a processing request. Multipart and
// urlencoded forms carry the same fields plus an optional file upload.
type processRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Text     string `json:"pdf_text" validate:"required"`
	Async    bool   `json:"async"`
}

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
	r := httputil.NewRouter(deps.Log)

	limiter := httputil.NewRateLimiter(deps.Config.RateLimit, deps.Config.RateBurst)
	r.With(limiter.Middleware).Post("/process", processHandler(deps))
	r.Get("/results/{id}", resultHandler(deps))
	r.Get("/health", httputil.HealthHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("server listening", "addr", addr, "models", deps.Registry.Len(), "async", deps.Async())
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func processHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, filename, ok := decodeProcessRequest(deps, w, r)
		if !ok {
			return
		}
		if req.Async || r.URL.Query().Get("async") != "" {
			submitAsync(deps, w, r, req, filename)
			return
		}

		ctx := r.Context()
		key := cache.Key(req.Question, req.Text)
		if cached, err := deps.Cache.GetResult(ctx, key); err == nil && cached != nil {
			deps.Log.Info("cache hit", "question", req.Question)
			writeOutput(w, *cached, true)
			return
		}

		out := deps.QA.Process(ctx, req.Text, req.Question, generate.Options{
			MaxLength: deps.Config.MaxLength,
			MinLength: deps.Config.MinLength,
		})

		ttl := time.Duration(deps.Config.CacheTTL) * time.Second
		if err := deps.Cache.SetResult(ctx, key, &out, ttl); err != nil {
			deps.Log.Warn("failed to cache result", "err", err)
		}
		if deps.Store != nil {
			persistOutput(deps, r, out, filename)
		}
		writeOutput(w, out, false)
	}
}

// decodeProcessRequest pulls question and document text out of a JSON body or
// a form (with optional file upload). Validation failures are written to w;
// ok is false once a response has been sent.
func decodeProcessRequest(deps app.Deps, w http.ResponseWriter, r *http.Request) (req processRequest, filename string, ok bool) {
	if r.ContentLength > deps.Config.MaxUploadSize {
		httputil.Fail(deps.Log, w, fmt.Sprintf("request too large (max %d bytes)", deps.Config.MaxUploadSize), nil, http.StatusBadRequest)
		return req, "", false
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return req, "", false
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return req, "", false
		}
		return req, "", true
	}

	req.Question = r.FormValue("question")
	req.Text = r.FormValue("pdf_text")
	req.Async = r.FormValue("async") != ""

	file, header, fileErr := r.FormFile("file")
	hasFile := fileErr == nil
	if hasFile {
		defer file.Close()
	}

	if req.Question == "" || (req.Text == "" && !hasFile) {
		httputil.Fail(deps.Log, w, "Both question and document text are required", nil, http.StatusBadRequest)
		return req, "", false
	}

	if hasFile {
		if !extract.Allowed(header.Filename) {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return req, "", false
		}
		if header.Size > deps.Config.MaxUploadSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", deps.Config.MaxUploadSize), nil, http.StatusBadRequest)
			return req, "", false
		}
		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return req, "", false
		}
		req.Text = extract.Text(header.Filename, content, deps.Log)
		filename = header.Filename
	}
	return req, filename, true
}

func submitAsync(deps app.Deps, w http.ResponseWriter, r *http.Request, req processRequest, filename string) {
	if !deps.Async() {
		httputil.Fail(deps.Log, w, "async processing not configured", nil, http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()

	rec, err := deps.Store.CreateRequest(ctx, filename, req.Question)
	if err != nil {
		httputil.Fail(deps.Log, w, "failed to persist request", err, http.StatusInternalServerError)
		return
	}
	payload, err := json.Marshal(generateTaskPayload{
		RequestID: rec.ID,
		Question:  req.Question,
		Text:      req.Text,
	})
	if err != nil {
		failRequest(deps, w, r, "marshal payload failed", err, rec.ID)
		return
	}
	task := queue.Task{Type: queue.TaskTypeGenerate, Payload: payload}
	if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
		failRequest(deps, w, r, "failed to enqueue request; please retry", err, rec.ID)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
		"request_id": rec.ID.String(),
		"status":     rec.Status,
	})
}

// failRequest marks the persisted request failed before responding.
func failRequest(deps app.Deps, w http.ResponseWriter, r *http.Request, message string, err error, id uuid.UUID) {
	log := deps.Log.With("request_id", id)
	if upErr := deps.Store.UpdateRequestStatus(r.Context(), id, store.StatusFailed); upErr != nil {
		log.Error("failed to mark request failed", "err", upErr)
	}
	httputil.Fail(log, w, message, err, http.StatusInternalServerError)
}

func resultHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httputil.Fail(deps.Log, w, "persistence not configured", nil, http.StatusServiceUnavailable)
			return
		}
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid request id", err, http.StatusBadRequest)
			return
		}
		res, err := deps.Store.GetResult(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			httputil.Fail(deps.Log, w, "result not ready", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load result", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"request_id": res.RequestID.String(),
			"question":   res.Question,
			"answers":    res.Answers,
			"references": res.References,
		})
	}
}

// persistOutput records a completed synchronous request, best-effort.
func persistOutput(deps app.Deps, r *http.Request, out qa.Output, filename string) {
	ctx := r.Context()
	rec, err := deps.Store.CreateRequest(ctx, filename, out.Question)
	if err != nil {
		deps.Log.Warn("failed to persist request", "err", err)
		return
	}
	if err := deps.Store.SaveResult(ctx, toStoredResult(rec.ID, out)); err != nil {
		deps.Log.Warn("failed to persist result", "err", err)
		return
	}
	if err := deps.Store.UpdateRequestStatus(ctx, rec.ID, store.StatusDone); err != nil {
		deps.Log.Warn("failed to update request status", "err", err)
	}
}

func toStoredResult(id uuid.UUID, out qa.Output) store.Result {
	answers := make([]store.Answer, len(out.Answers))
	for i, a := range out.Answers {
		answers[i] = store.Answer{Model: a.Model, Answer: a.Display()}
	}
	return store.Result{
		RequestID:  id,
		Question:   out.Question,
		Answers:    answers,
		References: out.References,
	}
}

func writeOutput(w http.ResponseWriter, out qa.Output, cached bool) {
	answers := make([]store.Answer, len(out.Answers))
	for i, a := range out.Answers {
		answers[i] = store.Answer{Model: a.Model, Answer: a.Display()}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"question":   out.Question,
		"answers":    answers,
		"references": out.References,
		"cached":     cached,
	})
}
