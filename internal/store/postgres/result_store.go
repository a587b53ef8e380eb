package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"diacfix/internal/domain"
	"diacfix/internal/port"
)

type resultStore struct {
	db *sqlx.DB
}

// NewResultStore creates a PostgreSQL-backed ResultStore with
// delete-on-read semantics.
func NewResultStore(db *sqlx.DB) port.ResultStore {
	return &resultStore{db: db}
}

func (s *resultStore) Put(ctx context.Context, result *domain.ProcessingResult) error {
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO processing_results
		(id, file_name, email, payload, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		result.ID, result.FileName, result.Email, result.Payload,
		result.Status, result.Error, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("resultStore.Put: %w", err)
	}
	return nil
}

// Take deletes and returns in one statement, so concurrent reads of the
// same identifier resolve to exactly one winner.
func (s *resultStore) Take(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	var result domain.ProcessingResult
	err := s.db.GetContext(ctx, &result,
		`DELETE FROM processing_results WHERE id = $1
		 RETURNING id, file_name, email, payload, status, error, created_at`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("resultStore.Take: %w", err)
	}
	return &result, nil
}

func (s *resultStore) Get(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	var result domain.ProcessingResult
	err := s.db.GetContext(ctx, &result,
		"SELECT * FROM processing_results WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("resultStore.Get: %w", err)
	}
	return &result, nil
}

func (s *resultStore) DeleteExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM processing_results WHERE created_at < $1",
		time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("resultStore.DeleteExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("resultStore.DeleteExpired rows: %w", err)
	}
	return int(n), nil
}
