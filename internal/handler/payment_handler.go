package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"diacfix/internal/domain"
	"diacfix/internal/middleware"
	"diacfix/internal/service"
)

// PaymentHandler handles payment verification and webhook endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type verifyRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Verify handles POST /api/v1/payments/verify
// @Summary Verify a checkout session was paid
// @Accept json
// @Produce json
// @Router /payments/verify [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}

	verified, err := h.paymentService.VerifyPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"paid":           true,
		"result_id":      verified.ResultID,
		"file_name":      verified.FileName,
		"download_token": verified.DownloadToken,
	})
}

// Webhook handles POST /api/v1/payments/webhook
// The provider signs the raw body; it must be read before any binding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_BODY", "could not read webhook body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, domain.ErrInvalidWebhook) {
			HandleError(c, err)
			return
		}
		// Non-signature failures get a 500 so the provider redelivers.
		log.Printf("[%s] webhook processing failed: %v", c.GetString(middleware.ContextKeyRequestID), err)
		RespondError(c, http.StatusInternalServerError, "WEBHOOK_FAILED", "webhook processing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
