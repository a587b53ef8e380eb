package extractor

import (
	"errors"
	"fmt"
)

// Kind classifies extraction failures.
type Kind string

const (
	// KindOversized means the input exceeded the configured size limit and
	// no network call was attempted.
	KindOversized Kind = "oversized"
	// KindTransport covers network failures and timeouts. Retryable.
	KindTransport Kind = "transport"
	// KindRemote means the provider returned an error payload. Not retryable.
	KindRemote Kind = "remote"
	// KindNoTextLayer is a remote error indicating a scanned/image-only
	// document; the caller should fall back to OCR mode.
	KindNoTextLayer Kind = "no_text_layer"
)

// Error is the failure type returned by text extraction.
type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s extraction failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewOversizedError reports an input rejected before any network call.
func NewOversizedError(provider string, size, max int64) *Error {
	return &Error{
		Kind:     KindOversized,
		Provider: provider,
		Err:      fmt.Errorf("document is %d bytes, limit is %d", size, max),
	}
}

// NewTransportError wraps a network or timeout failure.
func NewTransportError(provider string, err error) *Error {
	return &Error{Kind: KindTransport, Provider: provider, Err: err}
}

// NewRemoteError wraps a provider-reported failure.
func NewRemoteError(provider string, err error) *Error {
	return &Error{Kind: KindRemote, Provider: provider, Err: err}
}

// NewNoTextLayerError reports a document without an extractable text layer.
func NewNoTextLayerError(provider string, err error) *Error {
	return &Error{Kind: KindNoTextLayer, Provider: provider, Err: err}
}

// KindOf returns the extraction failure kind, or "" for non-extraction errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether the error is worth another attempt.
// Only transport failures are; remote rejections are final.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransport
}
