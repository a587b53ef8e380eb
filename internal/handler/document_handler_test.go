package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"diacfix/internal/config"
	"diacfix/internal/domain"
	"diacfix/internal/handler"
	"diacfix/internal/port"
	"diacfix/internal/token"
	"diacfix/mocks"
)

func disabledTokens() *token.Issuer {
	return token.NewIssuer(&config.DownloadConfig{})
}

func pdfForm(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDocumentHandler_Process_Success(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewDocumentHandler(mockProcess, mockPayment, disabledTokens(), 10)

	resultID := uuid.New()
	result := &domain.ProcessingResult{
		ID:       resultID,
		FileName: "test.pdf",
		Status:   domain.ResultStatusRepaired,
	}
	mockProcess.On("Process", mock.Anything, mock.AnythingOfType("domain.SubmittedDocument")).
		Return(result)
	mockPayment.On("CreateCheckout", mock.Anything, result).
		Return(&port.CheckoutSession{ID: "cs_123", URL: "https://checkout.test/cs_123"}, nil)

	body, contentType := pdfForm(t, "test.pdf", []byte("%PDF-1.4 test content"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/process", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Process(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, resultID.String(), data["result_id"])
	assert.Equal(t, "cs_123", data["session_id"])
	assert.Equal(t, false, data["degraded"])
	mockProcess.AssertExpectations(t)
	mockPayment.AssertExpectations(t)
}

func TestDocumentHandler_Process_NoFile(t *testing.T) {
	h := handler.NewDocumentHandler(new(mocks.MockProcessService), new(mocks.MockPaymentService), disabledTokens(), 10)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/process", nil)

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_Process_Oversized(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), disabledTokens(), 1)

	big := make([]byte, 2*1024*1024)
	copy(big, "%PDF-1.4")
	body, contentType := pdfForm(t, "big.pdf", big)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/process", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Process(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	mockProcess.AssertNotCalled(t, "Process")
}

func TestDocumentHandler_Process_NotAPDF(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), disabledTokens(), 10)

	body, contentType := pdfForm(t, "notes.txt", []byte("plain text, no pdf magic"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/process", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockProcess.AssertNotCalled(t, "Process")
}

func TestDocumentHandler_Process_CheckoutFailure(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewDocumentHandler(mockProcess, mockPayment, disabledTokens(), 10)

	result := &domain.ProcessingResult{ID: uuid.New(), FileName: "test.pdf"}
	mockProcess.On("Process", mock.Anything, mock.Anything).Return(result)
	mockPayment.On("CreateCheckout", mock.Anything, result).Return(nil, assert.AnError)

	body, contentType := pdfForm(t, "test.pdf", []byte("%PDF-1.4 test content"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/process", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Process(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDocumentHandler_Download_Success(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), disabledTokens(), 10)

	id := uuid.New()
	mockProcess.On("Download", mock.Anything, id).
		Return(&domain.ProcessingResult{ID: id, Payload: []byte("text cu diacritice")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/results/"+id.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text cu diacritice", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "document_reparat.txt")
}

func TestDocumentHandler_Download_NotFound(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), disabledTokens(), 10)

	id := uuid.New()
	mockProcess.On("Download", mock.Anything, id).Return(nil, domain.ErrResultNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/results/"+id.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_Download_InvalidID(t *testing.T) {
	h := handler.NewDocumentHandler(new(mocks.MockProcessService), new(mocks.MockPaymentService), disabledTokens(), 10)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/results/nope/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Download(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_Download_RequiresValidToken(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	tokens := token.NewIssuer(&config.DownloadConfig{TokenSecret: "secret"})
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), tokens, 10)

	id := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/results/"+id.String()+"/download?token=garbage", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockProcess.AssertNotCalled(t, "Download")
}

func TestDocumentHandler_Download_AcceptsIssuedToken(t *testing.T) {
	mockProcess := new(mocks.MockProcessService)
	tokens := token.NewIssuer(&config.DownloadConfig{TokenSecret: "secret"})
	h := handler.NewDocumentHandler(mockProcess, new(mocks.MockPaymentService), tokens, 10)

	id := uuid.New()
	tok, err := tokens.Issue(id)
	require.NoError(t, err)

	mockProcess.On("Download", mock.Anything, id).
		Return(&domain.ProcessingResult{ID: id, Payload: []byte("ok")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/results/"+id.String()+"/download?token="+tok, nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
