// Package memory provides an in-process ResultStore used in development
// and tests. Entries live until taken or swept.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"diacfix/internal/domain"
	"diacfix/internal/port"
)

type memoryStore struct {
	mu      sync.Mutex
	results map[uuid.UUID]*domain.ProcessingResult
}

// NewStore creates an empty in-memory ResultStore.
func NewStore() port.ResultStore {
	return &memoryStore{results: make(map[uuid.UUID]*domain.ProcessingResult)}
}

func (s *memoryStore) Put(_ context.Context, result *domain.ProcessingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.ID]; exists {
		return fmt.Errorf("memoryStore.Put: result %s already exists", result.ID)
	}
	s.results[result.ID] = result
	return nil
}

func (s *memoryStore) Take(_ context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	delete(s.results, id)
	return result, nil
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*domain.ProcessingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return result, nil
}

func (s *memoryStore) DeleteExpired(_ context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, result := range s.results {
		if result.CreatedAt.Before(cutoff) {
			delete(s.results, id)
			removed++
		}
	}
	return removed, nil
}
