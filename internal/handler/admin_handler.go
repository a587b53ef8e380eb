package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diacfix/internal/service"
)

// AdminHandler exposes the transactions ledger to operators.
type AdminHandler struct {
	reportService service.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reportService service.ReportService) *AdminHandler {
	return &AdminHandler{reportService: reportService}
}

// parsePeriod reads from/to query params (YYYY-MM-DD), defaulting to the
// last 30 days. The to bound is exclusive at the following midnight.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "from must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "to must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = t.AddDate(0, 0, 1)
	}
	return from, to, true
}

// ListTransactions handles GET /api/v1/admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	txs, err := h.reportService.ListTransactions(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"transactions": txs, "count": len(txs)})
}

// ExportTransactions handles GET /api/v1/admin/transactions/export
func (h *AdminHandler) ExportTransactions(c *gin.Context) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.reportService.WriteTransactionsXLSX(c.Request.Context(), from, to, c.Writer); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
