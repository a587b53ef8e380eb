package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"diacfix/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ListTransactions(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportService) WriteTransactionsXLSX(ctx context.Context, from, to time.Time, w io.Writer) error {
	args := m.Called(ctx, from, to, w)
	return args.Error(0)
}
