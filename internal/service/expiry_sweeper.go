package service

import (
	"context"
	"log"
	"time"

	"diacfix/internal/port"
)

// ExpirySweeper periodically removes unclaimed results from the store.
// Entries are normally consumed by the first download; this loop handles
// the ones nobody ever paid for.
type ExpirySweeper struct {
	store    port.ResultStore
	maxAge   time.Duration
	interval time.Duration
}

// NewExpirySweeper creates a sweeper for the given store.
func NewExpirySweeper(store port.ResultStore, maxAge, interval time.Duration) *ExpirySweeper {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpirySweeper{store: store, maxAge: maxAge, interval: interval}
}

// Start runs the sweep loop until ctx is canceled.
func (w *ExpirySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("expirySweeper: started (maxAge=%s, interval=%s)", w.maxAge, w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("expirySweeper: shutting down")
			return
		case <-ticker.C:
			removed, err := w.store.DeleteExpired(ctx, w.maxAge)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("expirySweeper: sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("expirySweeper: removed %d expired results", removed)
			}
		}
	}
}
