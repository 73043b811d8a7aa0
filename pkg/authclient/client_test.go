package authclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imoveiscrm/realestate-api/internal/api"
	"github.com/imoveiscrm/realestate-api/internal/api/middleware"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/service"
	"github.com/imoveiscrm/realestate-api/internal/infrastructure/db/memory"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	auth := service.NewAuthService(store, memory.NewSessionStore(), service.DefaultSessionTTL, log,
		service.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, service.NewSeeder(store, auth, log).Run(context.Background()))

	e := api.NewRouter(api.Deps{
		Auth:       auth,
		Properties: service.NewPropertyService(store, store, nil, log),
		Cookies:    middleware.NewCookieCodec("imoveis.sid", []byte("test"), false),
		Log:        log,
		Registry:   prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginCurrentUserLogout(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := c.Login(ctx, "admin@imoveiscrm.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	require.NoError(t, c.Logout(ctx))
	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_LoginFailure(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "admin@imoveiscrm.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_Register(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := c.Register(ctx, "novo@exemplo.com", "pw", "Novo")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role)

	other, err := New(srv.URL)
	require.NoError(t, err)
	_, err = other.Register(ctx, "novo@exemplo.com", "pw", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = other.Register(ctx, "not-an-email", "pw", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Details)
}

func TestTracker_PendingUntilResolved(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	tr := NewTracker(c)
	ctx := context.Background()

	assert.Equal(t, Pending, tr.Decide("admin").Outcome)

	require.NoError(t, tr.Refresh(ctx))
	d := tr.Decide("admin")
	assert.Equal(t, RedirectToLogin, d.Outcome)
	assert.Equal(t, "/login", d.Target)

	_, err = tr.Login(ctx, "cliente@exemplo.com", "cliente123")
	require.NoError(t, err)
	d = tr.Decide("admin")
	assert.Equal(t, RedirectToRoleHome, d.Outcome)
	assert.Equal(t, "/dashboard", d.Target)
	assert.Equal(t, Proceed, tr.Decide("client").Outcome)

	require.NoError(t, tr.Logout(ctx))
	assert.Equal(t, RedirectToLogin, tr.Decide("").Outcome)
}

func TestTracker_TransportFaultKeepsPending(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	tr := NewTracker(c)
	assert.Error(t, tr.Refresh(context.Background()))
	assert.Equal(t, Pending, tr.Decide("client").Outcome)
}
