package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/google/uuid"

	"diacfix/internal/config"
	"diacfix/internal/domain"
	"diacfix/internal/port"
	"diacfix/internal/token"
)

// PaymentService drives the checkout flow around a processing result.
type PaymentService interface {
	// CreateCheckout opens a hosted checkout session correlated to the
	// result identifier.
	CreateCheckout(ctx context.Context, result *domain.ProcessingResult) (*port.CheckoutSession, error)
	// VerifyPayment confirms a session was paid. It never consumes the
	// stored result.
	VerifyPayment(ctx context.Context, sessionID string) (*domain.VerifiedPayment, error)
	// HandleWebhook verifies and processes an asynchronous payment event.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	checkout port.CheckoutProvider
	store    port.ResultStore
	txRepo   port.TransactionRepository
	email    port.EmailSender
	tokens   *token.Issuer
	cfg      *config.CheckoutConfig
}

// NewPaymentService creates a PaymentService implementation.
func NewPaymentService(
	checkout port.CheckoutProvider,
	store port.ResultStore,
	txRepo port.TransactionRepository,
	email port.EmailSender,
	tokens *token.Issuer,
	cfg *config.CheckoutConfig,
) PaymentService {
	return &paymentService{
		checkout: checkout,
		store:    store,
		txRepo:   txRepo,
		email:    email,
		tokens:   tokens,
		cfg:      cfg,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, result *domain.ProcessingResult) (*port.CheckoutSession, error) {
	sess, err := s.checkout.CreateSession(ctx, port.CreateSessionInput{
		ResultID:    result.ID.String(),
		FileName:    result.FileName,
		Email:       result.Email,
		AmountCents: s.cfg.PriceCents,
		Currency:    s.cfg.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}
	log.Printf("paymentService.CreateCheckout: session %s created for result %s", sess.ID, result.ID)
	return sess, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, sessionID string) (*domain.VerifiedPayment, error) {
	sess, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Paid {
		return nil, domain.ErrPaymentNotCompleted
	}

	resultID, err := uuid.Parse(sess.ResultID)
	if err != nil {
		return nil, fmt.Errorf("session %s carries no valid result reference: %w", sessionID, err)
	}

	verified := &domain.VerifiedPayment{
		ResultID: resultID,
		FileName: sess.FileName,
	}
	if s.tokens.Enabled() {
		t, err := s.tokens.Issue(resultID)
		if err != nil {
			return nil, err
		}
		verified.DownloadToken = t
	}
	return verified, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.checkout.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != "checkout.session.completed" {
		log.Printf("paymentService.HandleWebhook: ignoring event type %s", event.Type)
		return nil
	}

	// Providers redeliver webhooks; the ledger keeps this idempotent.
	exists, err := s.txRepo.ExistsBySession(ctx, event.SessionID)
	if err != nil {
		return fmt.Errorf("checking for existing transaction: %w", err)
	}
	if exists {
		log.Printf("paymentService.HandleWebhook: session %s already recorded", event.SessionID)
		return nil
	}

	resultID, err := uuid.Parse(event.ResultID)
	if err != nil {
		return fmt.Errorf("webhook session %s carries no valid result reference: %w", event.SessionID, err)
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		SessionID:   event.SessionID,
		ResultID:    resultID,
		FileName:    event.FileName,
		Email:       event.Email,
		AmountCents: event.AmountCents,
		Currency:    event.Currency,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("recording transaction: %w", err)
	}

	log.Printf("paymentService.HandleWebhook: payment completed for result %s (session %s)",
		resultID, event.SessionID)

	s.sendDownloadEmail(ctx, event, resultID)
	return nil
}

// sendDownloadEmail is best-effort: a failed email must not make the
// provider retry an already-recorded payment.
func (s *paymentService) sendDownloadEmail(ctx context.Context, event *port.WebhookEvent, resultID uuid.UUID) {
	recipient := event.Email
	fileName := event.FileName
	if recipient == "" || fileName == "" {
		if result, err := s.store.Get(ctx, resultID); err == nil {
			if recipient == "" {
				recipient = result.Email
			}
			if fileName == "" {
				fileName = result.FileName
			}
		}
	}
	if recipient == "" {
		log.Printf("paymentService.sendDownloadEmail: no recipient for result %s, skipping", resultID)
		return
	}

	downloadURL := fmt.Sprintf("%s/download.html?file_id=%s", s.cfg.BaseURL, resultID)
	if s.tokens.Enabled() {
		t, err := s.tokens.Issue(resultID)
		if err != nil {
			log.Printf("paymentService.sendDownloadEmail: issuing token for result %s failed: %v", resultID, err)
			return
		}
		downloadURL += "&token=" + url.QueryEscape(t)
	}

	if err := s.email.SendDownloadEmail(ctx, recipient, downloadURL, fileName, event.SessionID); err != nil {
		log.Printf("paymentService.sendDownloadEmail: sending to %s failed: %v", recipient, err)
	}
}
