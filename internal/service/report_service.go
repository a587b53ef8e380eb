package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"diacfix/internal/domain"
	"diacfix/internal/port"
)

// ReportService exposes the transactions ledger for admin use.
type ReportService interface {
	ListTransactions(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
	// WriteTransactionsXLSX writes a spreadsheet of transactions in the
	// given period to w.
	WriteTransactionsXLSX(ctx context.Context, from, to time.Time, w io.Writer) error
}

type reportService struct {
	txRepo port.TransactionRepository
}

// NewReportService creates a ReportService implementation.
func NewReportService(txRepo port.TransactionRepository) ReportService {
	return &reportService{txRepo: txRepo}
}

func (s *reportService) ListTransactions(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	return s.txRepo.ListByPeriod(ctx, from, to)
}

var reportHeader = []string{"Date", "Session ID", "Result ID", "File", "Email", "Amount", "Currency"}

func (s *reportService) WriteTransactionsXLSX(ctx context.Context, from, to time.Time, w io.Writer) error {
	txs, err := s.txRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, tx := range txs {
		row := []interface{}{
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			tx.SessionID,
			tx.ResultID.String(),
			tx.FileName,
			tx.Email,
			float64(tx.AmountCents) / 100,
			tx.Currency,
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
