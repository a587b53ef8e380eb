package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, content []byte, fileName string) (string, error) {
	args := m.Called(ctx, content, fileName)
	return args.String(0), args.Error(1)
}
