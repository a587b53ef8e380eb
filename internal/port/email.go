package port

import "context"

// EmailSender defines the contract for sending user-facing notifications.
type EmailSender interface {
	// SendDownloadEmail sends the post-payment message containing the
	// download link for a repaired document.
	SendDownloadEmail(ctx context.Context, toEmail, downloadURL, fileName, transactionID string) error
}
