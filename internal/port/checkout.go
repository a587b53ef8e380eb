package port

import "context"

// CreateSessionInput holds what the checkout provider needs to open a
// hosted payment session for one processing result.
type CreateSessionInput struct {
	ResultID    string
	FileName    string
	Email       string
	AmountCents int64
	Currency    string
}

// CheckoutSession is the provider's view of one purchase attempt.
type CheckoutSession struct {
	ID       string
	URL      string
	ResultID string
	FileName string
	Email    string
	Paid     bool
}

// WebhookEvent is a verified asynchronous payment event.
type WebhookEvent struct {
	Type        string
	SessionID   string
	ResultID    string
	FileName    string
	Email       string
	AmountCents int64
	Currency    string
}

// CheckoutProvider abstracts the hosted payment-checkout vendor.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
	// GetSession retrieves a session's payment status by its identifier.
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	// ParseWebhookEvent verifies the payload signature and decodes the event.
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
