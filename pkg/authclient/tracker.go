package authclient

import (
	"context"
	"errors"
	"sync"

	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

type (
	Decision   = access.Decision
	Outcome    = access.Outcome
	Resolution = access.Resolution
)

const (
	Pending            = access.Pending
	Proceed            = access.Proceed
	RedirectToLogin    = access.RedirectToLogin
	RedirectToRoleHome = access.RedirectToRoleHome
)

// Tracker holds the identity a client shell renders against. It stays
// pending until the first CurrentUser call completes, so a view never
// redirects to login before the lookup has answered.
type Tracker struct {
	client *Client

	mu  sync.RWMutex
	res access.Resolution
}

func NewTracker(client *Client) *Tracker {
	return &Tracker{client: client}
}

func (t *Tracker) Resolution() Resolution {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.res
}

// Decide evaluates the access gate for a view requiring role. Pass "" for
// views open to any signed-in user.
func (t *Tracker) Decide(role string) Decision {
	return access.Decide(t.Resolution(), domain.Role(role))
}

// Refresh asks the API who is signed in. Transport faults leave the
// current state untouched and are returned.
func (t *Tracker) Refresh(ctx context.Context) error {
	user, err := t.client.CurrentUser(ctx)
	switch {
	case err == nil:
		t.set(access.Resolved(user, nil))
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrUserNotFound):
		t.set(access.Resolved(nil, err))
	default:
		return err
	}
	return nil
}

func (t *Tracker) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := t.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	t.set(access.Resolved(user, nil))
	return user, nil
}

func (t *Tracker) Register(ctx context.Context, email, password, name string) (*User, error) {
	user, err := t.client.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	t.set(access.Resolved(user, nil))
	return user, nil
}

func (t *Tracker) Logout(ctx context.Context) error {
	if err := t.client.Logout(ctx); err != nil {
		return err
	}
	t.set(access.Resolved(nil, ErrUnauthenticated))
	return nil
}

func (t *Tracker) set(res access.Resolution) {
	t.mu.Lock()
	t.res = res
	t.mu.Unlock()
}
