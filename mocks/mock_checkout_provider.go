package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"diacfix/internal/port"
)

// MockCheckoutProvider is a mock implementation of port.CheckoutProvider.
type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateSession(ctx context.Context, input port.CreateSessionInput) (*port.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutProvider) GetSession(ctx context.Context, sessionID string) (*port.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutProvider) ParseWebhookEvent(payload []byte, signature string) (*port.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.WebhookEvent), args.Error(1)
}
