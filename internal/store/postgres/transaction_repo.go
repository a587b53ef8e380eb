package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"diacfix/internal/domain"
	"diacfix/internal/port"
)

type transactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepo creates a PostgreSQL-backed TransactionRepository.
func NewTransactionRepo(db *sqlx.DB) port.TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO transactions
		(id, session_id, result_id, file_name, email, amount_cents, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.SessionID, tx.ResultID, tx.FileName, tx.Email,
		tx.AmountCents, tx.Currency, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("transactionRepo.Create: %w", err)
	}
	return nil
}

func (r *transactionRepo) ExistsBySession(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM transactions WHERE session_id = $1)", sessionID)
	if err != nil {
		return false, fmt.Errorf("transactionRepo.ExistsBySession: %w", err)
	}
	return exists, nil
}

func (r *transactionRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := r.db.SelectContext(ctx, &txs,
		`SELECT * FROM transactions
		 WHERE created_at >= $1 AND created_at < $2
		 ORDER BY created_at ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("transactionRepo.ListByPeriod: %w", err)
	}
	return txs, nil
}
