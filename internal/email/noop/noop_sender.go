package noop

import (
	"context"
	"log"

	"diacfix/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs download links to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDownloadEmail(_ context.Context, toEmail, downloadURL, fileName, transactionID string) error {
	log.Printf("[NOOP EMAIL] Download link for %s (file %s, tx %s): %s", toEmail, fileName, transactionID, downloadURL)
	return nil
}
