// Command report exports the transactions ledger for a period as an
// XLSX workbook.
// Usage: go run ./cmd/report -from 2026-01-01 -to 2026-02-01 -out transactions.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"diacfix/internal/config"
	"diacfix/internal/service"
	"diacfix/internal/store/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		fromFlag = flag.String("from", "", "period start (YYYY-MM-DD), default 30 days ago")
		toFlag   = flag.String("to", "", "period end (YYYY-MM-DD, exclusive), default today")
		outFlag  = flag.String("out", "transactions.xlsx", "output file path")
	)
	flag.Parse()

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if *fromFlag != "" {
		t, err := time.Parse("2006-01-02", *fromFlag)
		if err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
		from = t
	}
	if *toFlag != "" {
		t, err := time.Parse("2006-01-02", *toFlag)
		if err != nil {
			return fmt.Errorf("invalid -to: %w", err)
		}
		to = t
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	reportSvc := service.NewReportService(postgres.NewTransactionRepo(db))

	f, err := os.Create(*outFlag)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := reportSvc.WriteTransactionsXLSX(context.Background(), from, to, f); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Printf("wrote %s (%s to %s)", *outFlag, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return nil
}
