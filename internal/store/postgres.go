package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock so concurrent instances don't race the migration.
	const lockID = 771203941

	var acquired bool
	if err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another instance is migrating; wait briefly and skip.
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS requests (
			id UUID PRIMARY KEY,
			filename TEXT,
			question TEXT,
			status TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			request_id UUID PRIMARY KEY REFERENCES requests(id) ON DELETE CASCADE,
			question TEXT,
			answers JSONB,
			refs TEXT[]
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateRequest(ctx context.Context, filename, question string) (Request, error) {
	req := Request{
		ID:       uuid.New(),
		Filename: filename,
		Question: question,
		Status:   StatusPending,
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO requests (id, filename, question, status) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		req.ID, req.Filename, req.Question, req.Status,
	).Scan(&req.CreatedAt)
	if err != nil {
		return Request{}, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) GetRequest(ctx context.Context, id uuid.UUID) (Request, error) {
	var req Request
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, question, status, created_at FROM requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.Filename, &req.Question, &req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, result Result) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (request_id, question, answers, refs) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (request_id) DO UPDATE SET question = $2, answers = $3, refs = $4`,
		result.RequestID, result.Question, answers, pq.Array(result.References),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetResult(ctx context.Context, id uuid.UUID) (Result, error) {
	var (
		result  Result
		answers []byte
		refs    pq.StringArray
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT request_id, question, answers, refs FROM results WHERE request_id = $1`, id,
	).Scan(&result.RequestID, &result.Question, &answers, &refs)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("get result: %w", err)
	}
	if err := json.Unmarshal(answers, &result.Answers); err != nil {
		return Result{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	result.References = refs
	return result, nil
}
