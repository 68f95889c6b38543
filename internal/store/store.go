package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusDone       RequestStatus = "done"
	StatusFailed     RequestStatus = "failed"
)

// ErrNotFound is returned when a request or result does not exist.
var ErrNotFound = errors.New("not found")

// Request is one submitted document/question pair.
type Request struct {
	ID        uuid.UUID
	Filename  string
	Question  string
	Status    RequestStatus
	CreatedAt time.Time
}

// Answer is one model's entry in a persisted answer set.
type Answer struct {
	Model  string `json:"model"`
	Answer string `json:"answer"`
}

// Result is the completed output for a request.
type Result struct {
	RequestID  uuid.UUID
	Question   string
	Answers    []Answer
	References []string
}

// Store persists request history; an external DB implementation can replace this.
type Store interface {
	CreateRequest(ctx context.Context, filename, question string) (Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (Request, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
	SaveResult(ctx context.Context, res Result) error
	GetResult(ctx context.Context, id uuid.UUID) (Result, error)
}
