package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"diacfix/internal/domain"
)

// MockResultStore is a mock implementation of port.ResultStore.
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Put(ctx context.Context, result *domain.ProcessingResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultStore) Take(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}

func (m *MockResultStore) Get(ctx context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}

func (m *MockResultStore) DeleteExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	args := m.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}
