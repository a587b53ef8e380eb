package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diacfix/internal/domain"
)

func newResult(age time.Duration) *domain.ProcessingResult {
	return &domain.ProcessingResult{
		ID:        uuid.New(),
		FileName:  "doc.pdf",
		Payload:   []byte("text"),
		Status:    domain.ResultStatusRepaired,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestStore_TakeConsumesEntry(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	result := newResult(0)
	require.NoError(t, s.Put(ctx, result))

	got, err := s.Take(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, got.ID)
	assert.Equal(t, []byte("text"), got.Payload)

	// Second take must miss: the first download consumed the entry.
	_, err = s.Take(ctx, result.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestStore_GetDoesNotConsume(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	result := newResult(0)
	require.NoError(t, s.Put(ctx, result))

	_, err := s.Get(ctx, result.ID)
	require.NoError(t, err)
	_, err = s.Get(ctx, result.ID)
	require.NoError(t, err)

	_, err = s.Take(ctx, result.ID)
	assert.NoError(t, err)
}

func TestStore_PutDuplicateFails(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	result := newResult(0)
	require.NoError(t, s.Put(ctx, result))
	assert.Error(t, s.Put(ctx, result))
}

func TestStore_TakeUnknownID(t *testing.T) {
	s := NewStore()

	_, err := s.Take(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestStore_DeleteExpired(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	old := newResult(2 * time.Hour)
	fresh := newResult(time.Minute)
	require.NoError(t, s.Put(ctx, old))
	require.NoError(t, s.Put(ctx, fresh))

	removed, err := s.DeleteExpired(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.Get(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
	_, err = s.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
