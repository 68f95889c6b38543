package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperqa/internal/app"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthHandlerAlwaysRunning(t *testing.T) {
	// Deliberately empty deps: liveness must not depend on any backend.
	h := HealthHandler(app.Deps{Log: testLogger()})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "running" {
		t.Errorf("status payload = %q, want running", body["status"])
	}
}

func TestFailWritesJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(testLogger(), w, "something broke", nil, http.StatusBadRequest)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "something broke" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestFailDefaultsTo500(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(testLogger(), w, "boom", nil, 0)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	rl := NewRateLimiter(1, 2) // 1 rps, burst of 2
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/process", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests should pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", codes[2])
	}
}

func TestValidationErrorIsBadRequest(t *testing.T) {
	var req struct {
		Question string `validate:"required"`
	}
	err := Validator.Struct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	w := httptest.NewRecorder()
	ValidationError(testLogger(), w, err)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
