package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"diacfix/internal/domain"
	"diacfix/internal/port"
)

type transactionRepo struct {
	mu  sync.Mutex
	txs []domain.Transaction
}

// NewTransactionRepo creates an empty in-memory TransactionRepository.
func NewTransactionRepo() port.TransactionRepository {
	return &transactionRepo{}
}

func (r *transactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *transactionRepo) ExistsBySession(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *transactionRepo) ListByPeriod(_ context.Context, from, to time.Time) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	for _, tx := range r.txs {
		if !tx.CreatedAt.Before(from) && tx.CreatedAt.Before(to) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
