package extractor

import (
	"context"
	"log"
	"time"
)

// Retrier retries an outbound call with exponential backoff. It is a
// cross-cutting wrapper: any call site supplies its own operation closure.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// NewRetrier creates a Retrier, applying defaults for zero values.
func NewRetrier(maxAttempts int, baseDelay time.Duration) Retrier {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return Retrier{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Do runs fn up to MaxAttempts times, doubling the delay between attempts.
// Non-retryable errors are returned immediately. Context cancellation cuts
// the backoff wait short.
func (r Retrier) Do(ctx context.Context, op string, fn func() error) error {
	delay := r.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == r.MaxAttempts {
			break
		}

		log.Printf("extractor.Retrier: %s attempt %d/%d failed: %v (retrying in %s)",
			op, attempt, r.MaxAttempts, lastErr, delay)

		select {
		case <-ctx.Done():
			return NewTransportError(op, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	log.Printf("extractor.Retrier: %s failed after %d attempts: %v", op, r.MaxAttempts, lastErr)
	return lastErr
}
