package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diacfix/internal/domain"
	"diacfix/internal/service"
	"diacfix/internal/token"
)

const downloadFileName = "document_reparat.txt"

// DocumentHandler handles document processing and result download.
type DocumentHandler struct {
	processService service.ProcessService
	paymentService service.PaymentService
	tokens         *token.Issuer
	maxBytes       int64
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(
	processService service.ProcessService,
	paymentService service.PaymentService,
	tokens *token.Issuer,
	maxFileSizeMB int64,
) *DocumentHandler {
	return &DocumentHandler{
		processService: processService,
		paymentService: paymentService,
		tokens:         tokens,
		maxBytes:       maxFileSizeMB * 1024 * 1024,
	}
}

// Process handles POST /api/v1/documents/process
// @Summary Process a PDF and open a checkout session
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to repair (max 10MB)"
// @Param email formData string false "Submitter email for the download link"
// @Router /documents/process [post]
func (h *DocumentHandler) Process(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	if int64(len(content)) > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	// Magic-byte check; the multipart content type is client-supplied.
	probe := content
	if len(probe) > 512 {
		probe = probe[:512]
	}
	if !domain.AllowedContentTypes[http.DetectContentType(probe)] {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	doc := domain.SubmittedDocument{
		Content:  content,
		FileName: header.Filename,
		Email:    c.PostForm("email"),
	}

	result := h.processService.Process(c.Request.Context(), doc)

	sess, err := h.paymentService.CreateCheckout(c.Request.Context(), result)
	if err != nil {
		log.Printf("documentHandler.Process: checkout for result %s failed: %v", result.ID, err)
		RespondError(c, http.StatusBadGateway, "CHECKOUT_FAILED", "could not create a payment session")
		return
	}

	RespondCreated(c, gin.H{
		"result_id":    result.ID,
		"file_name":    result.FileName,
		"degraded":     result.Degraded(),
		"session_id":   sess.ID,
		"checkout_url": sess.URL,
	})
}

// Download handles GET /api/v1/results/:id/download
// @Summary Download a processed result once
// @Produce plain
// @Param id path string true "Result ID (UUID)"
// @Param token query string false "Signed download token"
// @Router /results/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid result ID")
		return
	}

	if h.tokens.Enabled() {
		if err := h.tokens.Verify(c.Query("token"), id); err != nil {
			HandleError(c, err)
			return
		}
	}

	result, err := h.processService.Download(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+downloadFileName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", result.Payload)
}
