package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

// DefaultSessionTTL is the fixed session lifetime.
const DefaultSessionTTL = 7 * 24 * time.Hour

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService implements credential checks and session lifecycle.
type AuthService struct {
	users    ports.UserStore
	sessions ports.SessionStore
	ttl      time.Duration
	cost     int
	now      func() time.Time
	log      zerolog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.cost = cost }
}

func NewAuthService(users ports.UserStore, sessions ports.SessionStore, ttl time.Duration, log zerolog.Logger, opts ...AuthOption) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword hashes a plaintext password with the service's cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, client ports.ClientInfo) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user, client)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, client ports.ClientInfo) (*ports.AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, domain.NewUser{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		Name:         strings.TrimSpace(in.Name),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return s.openSession(ctx, user, client)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser resolves the user bound to token. It fails with
// domain.ErrUnauthenticated when there is no live session and with
// domain.ErrUserNotFound when the bound user no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	hash := HashToken(token)
	sess, err := s.sessions.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if sess.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, hash)
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// openSession issues a session for an already verified user. The user is
// returned only once the session is stored.
func (s *AuthService) openSession(ctx context.Context, user *domain.User, client ports.ClientInfo) (*ports.AuthResult, error) {
	token, hash, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		TokenHash: hash,
		UserID:    user.ID,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Time("expires_at", sess.ExpiresAt).Msg("session opened")
	return &ports.AuthResult{User: user, Session: sess, Token: token}, nil
}
