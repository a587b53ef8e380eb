package domain

import "errors"

var (
	ErrResultNotFound      = errors.New("result not found or already downloaded")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidDocument     = errors.New("document is not a readable PDF")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrInvalidWebhook      = errors.New("webhook signature verification failed")
	ErrTokenInvalid        = errors.New("download token is invalid or expired")
	ErrUnauthorized        = errors.New("unauthorized")
)
