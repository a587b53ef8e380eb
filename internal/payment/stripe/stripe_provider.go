// Package stripe implements port.CheckoutProvider against Stripe hosted
// checkout sessions.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"diacfix/internal/config"
	"diacfix/internal/domain"
	"diacfix/internal/port"
)

const (
	productName          = "PDF cu diacritice reparate"
	metadataKeyResultID  = "file_id"
	metadataKeyFileName  = "file_name"
	eventSessionComplete = "checkout.session.completed"
)

type stripeProvider struct {
	api           *client.API
	webhookSecret string
	priceCents    int64
	currency      string
	baseURL       string
}

// NewProvider creates a Stripe-backed CheckoutProvider.
func NewProvider(cfg *config.CheckoutConfig) port.CheckoutProvider {
	return &stripeProvider{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		priceCents:    cfg.PriceCents,
		currency:      cfg.Currency,
		baseURL:       cfg.BaseURL,
	}
}

func (p *stripeProvider) CreateSession(ctx context.Context, input port.CreateSessionInput) (*port.CheckoutSession, error) {
	amount := input.AmountCents
	if amount <= 0 {
		amount = p.priceCents
	}
	currency := input.Currency
	if currency == "" {
		currency = p.currency
	}

	params := &stripego.CheckoutSessionParams{
		Params: stripego.Params{Context: ctx},
		Mode:   stripego.String(string(stripego.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency: stripego.String(currency),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripego.String(productName),
						Description: stripego.String(input.FileName),
					},
					UnitAmount: stripego.Int64(amount),
				},
				Quantity: stripego.Int64(1),
			},
		},
		SuccessURL: stripego.String(fmt.Sprintf(
			"%s/download.html?file_id=%s&session_id={CHECKOUT_SESSION_ID}", p.baseURL, input.ResultID)),
		CancelURL:         stripego.String(p.baseURL + "/"),
		ClientReferenceID: stripego.String(input.ResultID),
	}
	if input.Email != "" {
		params.CustomerEmail = stripego.String(input.Email)
	}
	params.AddMetadata(metadataKeyResultID, input.ResultID)
	params.AddMetadata(metadataKeyFileName, input.FileName)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: creating checkout session: %w", err)
	}

	return sessionFromStripe(sess), nil
}

func (p *stripeProvider) GetSession(ctx context.Context, sessionID string) (*port.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{Params: stripego.Params{Context: ctx}}
	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripego.ErrorCodeResourceMissing {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("stripe: retrieving checkout session: %w", err)
	}
	return sessionFromStripe(sess), nil
}

func (p *stripeProvider) ParseWebhookEvent(payload []byte, signature string) (*port.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidWebhook, err)
	}

	out := &port.WebhookEvent{Type: string(event.Type)}
	if out.Type != eventSessionComplete {
		return out, nil
	}

	var sess stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("stripe: decoding webhook session: %w", err)
	}

	out.SessionID = sess.ID
	out.ResultID = sess.ClientReferenceID
	out.FileName = sess.Metadata[metadataKeyFileName]
	out.Email = customerEmail(&sess)
	out.AmountCents = sess.AmountTotal
	out.Currency = string(sess.Currency)
	return out, nil
}

func sessionFromStripe(sess *stripego.CheckoutSession) *port.CheckoutSession {
	return &port.CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		ResultID: sess.ClientReferenceID,
		FileName: sess.Metadata[metadataKeyFileName],
		Email:    customerEmail(sess),
		Paid:     sess.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
	}
}

func customerEmail(sess *stripego.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}
