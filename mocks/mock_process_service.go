package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"diacfix/internal/domain"
)

// MockProcessService is a mock implementation of service.ProcessService.
type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) Process(ctx context.Context, doc domain.SubmittedDocument) *domain.ProcessingResult {
	args := m.Called(ctx, doc)
	return args.Get(0).(*domain.ProcessingResult)
}

func (m *MockProcessService) Download(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}
