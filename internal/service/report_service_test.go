package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"diacfix/internal/domain"
	"diacfix/mocks"
)

func TestReportService_WriteTransactionsXLSX(t *testing.T) {
	mockRepo := new(mocks.MockTransactionRepo)
	svc := NewReportService(mockRepo)

	resultID := uuid.New()
	txs := []domain.Transaction{
		{
			ID:          uuid.New(),
			SessionID:   "cs_123",
			ResultID:    resultID,
			FileName:    "contract.pdf",
			Email:       "u@example.com",
			AmountCents: 199,
			Currency:    "eur",
			CreatedAt:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
	}
	mockRepo.On("ListByPeriod", mock.Anything, mock.Anything, mock.Anything).Return(txs, nil)

	var buf bytes.Buffer
	err := svc.WriteTransactionsXLSX(context.Background(), time.Time{}, time.Now(), &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Transactions", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Session ID", header)

	session, err := f.GetCellValue("Transactions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session)

	file, err := f.GetCellValue("Transactions", "D2")
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", file)
}

func TestReportService_WriteTransactionsXLSX_RepoError(t *testing.T) {
	mockRepo := new(mocks.MockTransactionRepo)
	svc := NewReportService(mockRepo)

	mockRepo.On("ListByPeriod", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	var buf bytes.Buffer
	err := svc.WriteTransactionsXLSX(context.Background(), time.Time{}, time.Now(), &buf)
	assert.Error(t, err)
}

func TestReportService_ListTransactions(t *testing.T) {
	mockRepo := new(mocks.MockTransactionRepo)
	svc := NewReportService(mockRepo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("ListByPeriod", mock.Anything, from, to).Return([]domain.Transaction{}, nil)

	txs, err := svc.ListTransactions(context.Background(), from, to)
	require.NoError(t, err)
	assert.Empty(t, txs)
	mockRepo.AssertExpectations(t)
}
