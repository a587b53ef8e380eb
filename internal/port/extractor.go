package port

import "context"

// TextExtractor abstracts the remote document-to-text conversion provider.
type TextExtractor interface {
	// Extract converts document bytes into plain text. Implementations
	// make outbound network calls under bounded timeouts and return an
	// *extractor.Error on failure; they have no success guarantee, so
	// callers must fall back rather than crash.
	Extract(ctx context.Context, content []byte, fileName string) (string, error)
}
