package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmittedDocument is the raw upload handed to the processing pipeline.
// It is owned by the request that created it and discarded once consumed.
type SubmittedDocument struct {
	Content  []byte
	FileName string
	Email    string
}

// ProcessingResult is the write-once record produced by one pipeline run.
// The identifier is generated exactly once per run and is the sole handle
// correlating a checkout session with its deliverable.
type ProcessingResult struct {
	ID       uuid.UUID    `db:"id" json:"id"`
	FileName string       `db:"file_name" json:"file_name"`
	Email    string       `db:"email" json:"email,omitempty"`
	Payload  []byte       `db:"payload" json:"-"`
	Status   ResultStatus `db:"status" json:"status"`
	// Error holds a short machine-oriented cause when Status is degraded.
	Error     string    `db:"error" json:"error,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Degraded reports whether the result carries an explanatory payload
// instead of repaired content.
func (r *ProcessingResult) Degraded() bool {
	return r.Status == ResultStatusDegraded
}

// VerifiedPayment is what a successful payment verification hands back to
// the download page.
type VerifiedPayment struct {
	ResultID      uuid.UUID `json:"result_id"`
	FileName      string    `json:"file_name"`
	DownloadToken string    `json:"download_token,omitempty"`
}

// Transaction is one completed checkout recorded by the payment webhook.
type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	ResultID    uuid.UUID `db:"result_id" json:"result_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	Email       string    `db:"email" json:"email,omitempty"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Currency    string    `db:"currency" json:"currency"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
