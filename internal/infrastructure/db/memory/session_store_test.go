package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	err := s.Create(ctx, &domain.Session{TokenHash: "h1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	got, err := s.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, s.Delete(ctx, "h1"))
	require.NoError(t, s.Delete(ctx, "h1"), "delete must be idempotent")

	_, err = s.Get(ctx, "h1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_ExpiryIsFixed(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Create(ctx, &domain.Session{TokenHash: "h", UserID: "u", CreatedAt: base, ExpiresAt: base.Add(time.Hour)}))

	// reads do not extend the lifetime
	clock = base.Add(59 * time.Minute)
	_, err := s.Get(ctx, "h")
	require.NoError(t, err)

	clock = base.Add(time.Hour)
	_, err = s.Get(ctx, "h")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Sweep(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Create(ctx, &domain.Session{TokenHash: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, s.Create(ctx, &domain.Session{TokenHash: "live", ExpiresAt: now.Add(time.Hour)}))

	assert.Equal(t, 1, s.Sweep())
	_, err := s.Get(ctx, "live")
	assert.NoError(t, err)
}
