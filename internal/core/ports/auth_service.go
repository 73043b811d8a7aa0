package ports

import (
	"context"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// ClientInfo describes the caller a session is bound to.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// RegisterInput carries self-registration data. Any role the caller asks
// for is ignored.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by Login and Register. Token is the raw session
// token; only its hash is persisted.
type AuthResult struct {
	User    *domain.User
	Session *domain.Session
	Token   string
}

type AuthService interface {
	Login(ctx context.Context, email, password string, client ClientInfo) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput, client ClientInfo) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
