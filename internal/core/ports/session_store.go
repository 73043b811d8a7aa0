package ports

import (
	"context"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// SessionStore holds server-side sessions keyed by token hash.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired hashes.
	Get(ctx context.Context, tokenHash string) (*domain.Session, error)
	// Delete is idempotent; only backend faults are reported.
	Delete(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
}
