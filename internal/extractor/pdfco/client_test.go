package pdfco_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diacfix/internal/config"
	"diacfix/internal/extractor"
	"diacfix/internal/extractor/pdfco"
)

func testConfig() *config.ExtractorConfig {
	return &config.ExtractorConfig{
		APIKey:           "test-key",
		MaxFileSizeMB:    10,
		MaxRetries:       3,
		RetryBaseDelayMS: 1,
	}
}

type stubResponse struct {
	status int
	body   map[string]interface{}
}

// newStubServer serves canned responses per path, advancing through the
// slice on each call to that path.
func newStubServer(t *testing.T, responses map[string][]stubResponse) (*httptest.Server, *map[string]int) {
	t.Helper()
	callCounts := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		queue, ok := responses[r.URL.Path]
		require.True(t, ok, "unexpected path %s", r.URL.Path)
		idx := callCounts[r.URL.Path]
		require.Less(t, idx, len(queue), "too many calls to %s", r.URL.Path)
		callCounts[r.URL.Path]++

		resp := queue[idx]
		w.WriteHeader(resp.status)
		_ = json.NewEncoder(w).Encode(resp.body)
	}))
	t.Cleanup(srv.Close)
	return srv, &callCounts
}

func TestClient_Extract_Success(t *testing.T) {
	srv, _ := newStubServer(t, map[string][]stubResponse{
		"/file/upload": {
			{http.StatusOK, map[string]interface{}{"error": false, "url": "https://files.test/doc.pdf"}},
		},
		"/pdf/convert/to/text": {
			{http.StatusOK, map[string]interface{}{"error": false, "text": "Ã£Æ'Â¢nger"}},
		},
	})

	c := pdfco.NewClientWithEndpoint(testConfig(), srv.URL)
	text, err := c.Extract(context.Background(), []byte("%PDF-1.4"), "doc.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "Ã£Æ'Â¢nger", text)
}

func TestClient_Extract_RetriesServerErrors(t *testing.T) {
	srv, counts := newStubServer(t, map[string][]stubResponse{
		"/file/upload": {
			{http.StatusBadGateway, map[string]interface{}{}},
			{http.StatusOK, map[string]interface{}{"error": false, "url": "https://files.test/doc.pdf"}},
		},
		"/pdf/convert/to/text": {
			{http.StatusOK, map[string]interface{}{"error": false, "text": "hello"}},
		},
	})

	c := pdfco.NewClientWithEndpoint(testConfig(), srv.URL)
	text, err := c.Extract(context.Background(), []byte("%PDF-1.4"), "doc.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 2, (*counts)["/file/upload"])
}

func TestClient_Extract_RemoteErrorNotRetried(t *testing.T) {
	srv, counts := newStubServer(t, map[string][]stubResponse{
		"/file/upload": {
			{http.StatusUnauthorized, map[string]interface{}{"message": "bad key"}},
		},
	})

	c := pdfco.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := c.Extract(context.Background(), []byte("%PDF-1.4"), "doc.pdf")

	assert.Error(t, err)
	assert.Equal(t, extractor.KindRemote, extractor.KindOf(err))
	assert.Equal(t, 1, (*counts)["/file/upload"])
}

func TestClient_Extract_OCRFallbackOnEmptyText(t *testing.T) {
	srv, counts := newStubServer(t, map[string][]stubResponse{
		"/file/upload": {
			{http.StatusOK, map[string]interface{}{"error": false, "url": "https://files.test/scan.pdf"}},
		},
		"/pdf/convert/to/text": {
			{http.StatusOK, map[string]interface{}{"error": false, "text": "  "}},
			{http.StatusOK, map[string]interface{}{"error": false, "text": "recovered via ocr"}},
		},
	})

	c := pdfco.NewClientWithEndpoint(testConfig(), srv.URL)
	text, err := c.Extract(context.Background(), []byte("%PDF-1.4"), "scan.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "recovered via ocr", text)
	assert.Equal(t, 2, (*counts)["/pdf/convert/to/text"])
}

func TestClient_Extract_OCRFallbackOnProviderMessage(t *testing.T) {
	srv, _ := newStubServer(t, map[string][]stubResponse{
		"/file/upload": {
			{http.StatusOK, map[string]interface{}{"error": false, "url": "https://files.test/scan.pdf"}},
		},
		"/pdf/convert/to/text": {
			{http.StatusOK, map[string]interface{}{"error": true, "message": "document appears to be scanned"}},
			{http.StatusOK, map[string]interface{}{"error": true, "message": "ocr failed too"}},
		},
	})

	c := pdfco.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := c.Extract(context.Background(), []byte("%PDF-1.4"), "scan.pdf")

	assert.Error(t, err)
	assert.Equal(t, extractor.KindRemote, extractor.KindOf(err))
}

func TestClient_Extract_OversizedSkipsNetwork(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxFileSizeMB = 1
	c := pdfco.NewClientWithEndpoint(cfg, srv.URL)

	big := make([]byte, 2*1024*1024)
	_, err := c.Extract(context.Background(), big, "big.pdf")

	assert.Error(t, err)
	assert.Equal(t, extractor.KindOversized, extractor.KindOf(err))
	assert.False(t, called.Load())
}
