// Package pdfco implements port.TextExtractor against the PDF.co document
// conversion API: a base64 file upload followed by a text conversion call,
// with an OCR-mode fallback for scanned documents.
package pdfco

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"diacfix/internal/config"
	"diacfix/internal/extractor"
)

const (
	providerName = "pdf.co"
	uploadPath   = "/file/upload"
	convertPath  = "/pdf/convert/to/text"
)

// Client implements port.TextExtractor using the PDF.co API.
type Client struct {
	apiKey      string
	baseURL     string
	maxBytes    int64
	ocrLanguage string

	uploadClient  *http.Client
	convertClient *http.Client
	ocrClient     *http.Client

	retrier extractor.Retrier
}

// NewClient creates a PDF.co-backed extractor from config.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, baseURL string) *Client {
	uploadTimeout := secsOrDefault(cfg.UploadTimeoutSecs, 30*time.Second)
	convertTimeout := secsOrDefault(cfg.ConvertTimeoutSecs, 60*time.Second)
	ocrTimeout := secsOrDefault(cfg.OCRTimeoutSecs, 120*time.Second)

	maxBytes := cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}

	lang := cfg.OCRLanguage
	if lang == "" {
		lang = "ron"
	}

	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		maxBytes:      maxBytes,
		ocrLanguage:   lang,
		uploadClient:  &http.Client{Timeout: uploadTimeout},
		convertClient: &http.Client{Timeout: convertTimeout},
		ocrClient:     &http.Client{Timeout: ocrTimeout},
		retrier:       extractor.NewRetrier(cfg.MaxRetries, time.Duration(cfg.RetryBaseDelayMS)*time.Millisecond),
	}
}

func secsOrDefault(secs int, def time.Duration) time.Duration {
	if secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

// Extract uploads the document and converts it to plain text. Scanned
// documents without a text layer get one OCR-mode pass with a longer
// timeout before the error is returned.
func (c *Client) Extract(ctx context.Context, content []byte, fileName string) (string, error) {
	if int64(len(content)) > c.maxBytes {
		return "", extractor.NewOversizedError(providerName, int64(len(content)), c.maxBytes)
	}

	var fileURL string
	err := c.retrier.Do(ctx, "pdf.co upload", func() error {
		u, uploadErr := c.upload(ctx, content, fileName)
		if uploadErr != nil {
			return uploadErr
		}
		fileURL = u
		return nil
	})
	if err != nil {
		return "", err
	}

	var text string
	err = c.retrier.Do(ctx, "pdf.co convert", func() error {
		t, convErr := c.convert(ctx, fileURL, false)
		if convErr != nil {
			return convErr
		}
		text = t
		return nil
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = extractor.NewNoTextLayerError(providerName, fmt.Errorf("conversion returned empty text"))
	}
	if err == nil {
		return text, nil
	}

	if extractor.KindOf(err) == extractor.KindNoTextLayer {
		log.Printf("pdfco.Extract: no text layer in %s, falling back to OCR mode", fileName)
		ocrErr := c.retrier.Do(ctx, "pdf.co ocr", func() error {
			t, convErr := c.convert(ctx, fileURL, true)
			if convErr != nil {
				return convErr
			}
			text = t
			return nil
		})
		if ocrErr == nil {
			return text, nil
		}
		return "", ocrErr
	}

	return "", err
}

// apiResponse models the shared shape of PDF.co API responses.
type apiResponse struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	URL     string `json:"url"`
	Text    string `json:"text"`
}

func (c *Client) upload(ctx context.Context, content []byte, fileName string) (string, error) {
	reqBody := map[string]interface{}{
		"file": base64.StdEncoding.EncodeToString(content),
		"name": fileName,
	}

	resp, err := c.post(ctx, c.uploadClient, uploadPath, reqBody)
	if err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", extractor.NewRemoteError(providerName, fmt.Errorf("upload returned no file URL"))
	}
	return resp.URL, nil
}

func (c *Client) convert(ctx context.Context, fileURL string, ocr bool) (string, error) {
	reqBody := map[string]interface{}{
		"url":    fileURL,
		"inline": true,
	}
	client := c.convertClient
	if ocr {
		reqBody["ocr"] = true
		reqBody["lang"] = c.ocrLanguage
		client = c.ocrClient
	}

	resp, err := c.post(ctx, client, convertPath, reqBody)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) post(ctx context.Context, client *http.Client, path string, reqBody map[string]interface{}) (*apiResponse, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, extractor.NewRemoteError(providerName, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, extractor.NewRemoteError(providerName, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, extractor.NewTransportError(providerName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, extractor.NewTransportError(providerName, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, extractor.NewTransportError(providerName,
			fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(respBody, 200)))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, extractor.NewRemoteError(providerName,
			fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(respBody, 200)))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, extractor.NewRemoteError(providerName, fmt.Errorf("unmarshaling response: %w", err))
	}
	if parsed.Error {
		msg := parsed.Message
		if msg == "" {
			msg = "provider reported an unspecified error"
		}
		if isNoTextLayer(msg) {
			return nil, extractor.NewNoTextLayerError(providerName, fmt.Errorf("%s", msg))
		}
		return nil, extractor.NewRemoteError(providerName, fmt.Errorf("%s", msg))
	}

	return &parsed, nil
}

// isNoTextLayer matches provider messages indicating a scanned or
// image-only document.
func isNoTextLayer(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "no text") ||
		strings.Contains(m, "scanned") ||
		strings.Contains(m, "image-based")
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
