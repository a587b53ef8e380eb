package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"diacfix/internal/domain"
	"diacfix/internal/handler"
	"diacfix/mocks"
)

func TestPaymentHandler_Verify_Success(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	resultID := uuid.New()
	mockPayment.On("VerifyPayment", mock.Anything, "cs_123").Return(&domain.VerifiedPayment{
		ResultID:      resultID,
		FileName:      "doc.pdf",
		DownloadToken: "tok",
	}, nil)

	body, _ := json.Marshal(gin.H{"session_id": "cs_123"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["paid"])
	assert.Equal(t, resultID.String(), data["result_id"])
	assert.Equal(t, "tok", data["download_token"])
}

func TestPaymentHandler_Verify_MissingSessionID(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPayment.AssertNotCalled(t, "VerifyPayment")
}

func TestPaymentHandler_Verify_Unpaid(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	mockPayment.On("VerifyPayment", mock.Anything, "cs_unpaid").
		Return(nil, domain.ErrPaymentNotCompleted)

	body, _ := json.Marshal(gin.H{"session_id": "cs_unpaid"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/verify", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAYMENT_NOT_COMPLETED", resp.Error.Code)
}

func TestPaymentHandler_Webhook_Success(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	mockPayment.On("HandleWebhook", mock.Anything, []byte("payload"), "sig").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte("payload")))
	c.Request.Header.Set("Stripe-Signature", "sig")

	h.Webhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestPaymentHandler_Webhook_BadSignature(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	mockPayment.On("HandleWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrInvalidWebhook)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte("payload")))
	c.Request.Header.Set("Stripe-Signature", "bad")

	h.Webhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Webhook_ProcessingFailureGets500(t *testing.T) {
	mockPayment := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(mockPayment)

	mockPayment.On("HandleWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte("payload")))
	c.Request.Header.Set("Stripe-Signature", "sig")

	h.Webhook(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
