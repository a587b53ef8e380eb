package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"diacfix/internal/config"
	"diacfix/internal/domain"
	"diacfix/internal/email/noop"
	sesmail "diacfix/internal/email/ses"
	"diacfix/internal/extractor/pdfco"
	"diacfix/internal/handler"
	stripepay "diacfix/internal/payment/stripe"
	"diacfix/internal/port"
	"diacfix/internal/router"
	"diacfix/internal/service"
	"diacfix/internal/store/memory"
	"diacfix/internal/store/postgres"
	"diacfix/internal/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the result store and transactions ledger
	var (
		db     *sqlx.DB
		store  port.ResultStore
		txRepo port.TransactionRepository
	)
	switch cfg.Store.Provider {
	case "postgres":
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		store = postgres.NewResultStore(db)
		txRepo = postgres.NewTransactionRepo(db)
	case "memory":
		store = memory.NewStore()
		txRepo = memory.NewTransactionRepo()
	default:
		return fmt.Errorf("unknown store provider %q", cfg.Store.Provider)
	}

	// Initialize the external extraction client
	extractor := pdfco.NewClient(&cfg.Extractor)

	// Initialize the checkout provider
	checkout := stripepay.NewProvider(&cfg.Checkout)

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = sesmail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES client: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	tokens := token.NewIssuer(&cfg.Download)

	// Initialize services
	processSvc := service.NewProcessService(extractor, store, service.ProcessConfig{
		Deliverable:  domain.DeliverableMode(cfg.Pipeline.Deliverable),
		PreviewChars: cfg.Pipeline.PreviewChars,
	})
	paymentSvc := service.NewPaymentService(checkout, store, txRepo, emailSender, tokens, &cfg.Checkout)
	reportSvc := service.NewReportService(txRepo)

	// Initialize handlers
	documentH := handler.NewDocumentHandler(processSvc, paymentSvc, tokens, cfg.Extractor.MaxFileSizeMB)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	adminH := handler.NewAdminHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Sweep unclaimed results in the background
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	sweeper := service.NewExpirySweeper(store, cfg.Store.MaxAge, 15*time.Minute)
	go sweeper.Start(sweepCtx)

	// Setup router
	r := router.Setup(cfg, documentH, paymentH, adminH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
