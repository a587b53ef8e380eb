package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"diacfix/internal/domain"
	"diacfix/internal/handler"
	"diacfix/mocks"
)

func TestAdminHandler_ListTransactions(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewAdminHandler(mockReport)

	txs := []domain.Transaction{
		{ID: uuid.New(), SessionID: "cs_1", ResultID: uuid.New(), AmountCents: 199, Currency: "eur"},
		{ID: uuid.New(), SessionID: "cs_2", ResultID: uuid.New(), AmountCents: 199, Currency: "eur"},
	}
	mockReport.On("ListTransactions", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(txs, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/transactions", nil)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
}

func TestAdminHandler_ListTransactions_ExplicitPeriod(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewAdminHandler(mockReport)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// to is exclusive at the next midnight
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mockReport.On("ListTransactions", mock.Anything, from, to).
		Return([]domain.Transaction{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/transactions?from=2026-01-01&to=2026-01-31", nil)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReport.AssertExpectations(t)
}

func TestAdminHandler_ListTransactions_BadPeriod(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewAdminHandler(mockReport)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/transactions?from=january", nil)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReport.AssertNotCalled(t, "ListTransactions")
}

func TestAdminHandler_ExportTransactions(t *testing.T) {
	mockReport := new(mocks.MockReportService)
	h := handler.NewAdminHandler(mockReport)

	mockReport.On("WriteTransactionsXLSX", mock.Anything,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), mock.Anything).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/transactions/export", nil)

	h.ExportTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions.xlsx")
	mockReport.AssertExpectations(t)
}
