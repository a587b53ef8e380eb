package port

import (
	"context"
	"time"

	"diacfix/internal/domain"
)

// TransactionRepository persists the ledger of completed checkouts.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// ExistsBySession reports whether a session was already recorded,
	// so webhook redeliveries stay idempotent.
	ExistsBySession(ctx context.Context, sessionID string) (bool, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
}
