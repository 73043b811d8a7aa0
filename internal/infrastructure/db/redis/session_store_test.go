package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

func TestSessionKey(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestSessionStore_CreateRejectsExpired(t *testing.T) {
	// The client is never dialled: the expiry check happens first.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	store := NewSessionStore(client)
	err := store.Create(context.Background(), &domain.Session{
		TokenHash: "h",
		ExpiresAt: time.Now().Add(-time.Second),
	})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
