package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"diacfix/internal/domain"
)

// ResultStore is ephemeral keyed storage for processing results. Entries
// are written exactly once and consumed by a single Take; unclaimed
// entries are swept by DeleteExpired.
type ResultStore interface {
	// Put stores a result under its identifier.
	Put(ctx context.Context, result *domain.ProcessingResult) error
	// Take atomically fetches and deletes a result. A second Take of the
	// same identifier returns domain.ErrResultNotFound.
	Take(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error)
	// Get reads a result without consuming it, for payment verification
	// and webhook correlation.
	Get(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error)
	// DeleteExpired removes entries older than maxAge and returns how many
	// were removed.
	DeleteExpired(ctx context.Context, maxAge time.Duration) (int, error)
}
