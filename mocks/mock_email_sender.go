package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDownloadEmail(ctx context.Context, toEmail, downloadURL, fileName, transactionID string) error {
	args := m.Called(ctx, toEmail, downloadURL, fileName, transactionID)
	return args.Error(0)
}
