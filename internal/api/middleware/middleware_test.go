package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

type stubAuthService struct {
	currentUserFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Login(context.Context, string, string, ports.ClientInfo) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput, ports.ClientInfo) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentUserFn(ctx, token)
}

func newCodec() *CookieCodec {
	return NewCookieCodec("imoveis.sid", []byte("test-secret"), false)
}

func runIdentity(t *testing.T, auth ports.AuthService, cookie *http.Cookie) (access.Resolution, string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		res   access.Resolution
		token string
	)
	err := Identity(auth, newCodec(), zerolog.Nop())(func(c echo.Context) error {
		res = IdentityFrom(c)
		token = SessionToken(c)
		return nil
	})(c)
	return res, token, err
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := newCodec()
	value, err := codec.Encode("raw-token", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := codec.Decode(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "raw-token" {
		t.Fatalf("expected raw-token, got %q", got)
	}
}

func TestCookieCodec_RejectsTamperingAndExpiry(t *testing.T) {
	codec := newCodec()

	other := NewCookieCodec("imoveis.sid", []byte("other-secret"), false)
	forged, _ := other.Encode("raw-token", time.Now().Add(time.Hour))
	if _, err := codec.Decode(forged); !errors.Is(err, ErrInvalidCookie) {
		t.Fatalf("expected ErrInvalidCookie for foreign signature, got %v", err)
	}

	expired, _ := codec.Encode("raw-token", time.Now().Add(-time.Minute))
	if _, err := codec.Decode(expired); !errors.Is(err, ErrInvalidCookie) {
		t.Fatalf("expected ErrInvalidCookie for expired cookie, got %v", err)
	}

	if _, err := codec.Decode("garbage"); !errors.Is(err, ErrInvalidCookie) {
		t.Fatalf("expected ErrInvalidCookie for garbage, got %v", err)
	}
}

func TestCookieCodec_WriteSetsFlags(t *testing.T) {
	codec := NewCookieCodec("imoveis.sid", []byte("k"), true)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := codec.Write(c, "tok", time.Now().Add(7*24*time.Hour)); err != nil {
		t.Fatalf("write: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if !ck.HttpOnly || !ck.Secure || ck.Path != "/" || ck.Name != "imoveis.sid" {
		t.Fatalf("unexpected cookie attributes: %+v", ck)
	}
}

func TestIdentity_NoCookie(t *testing.T) {
	auth := &stubAuthService{currentUserFn: func(context.Context, string) (*domain.User, error) {
		t.Fatalf("CurrentUser must not be called without a cookie")
		return nil, nil
	}}
	res, _, err := runIdentity(t, auth, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Done || res.User != nil || !errors.Is(res.Cause, domain.ErrUnauthenticated) {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestIdentity_ValidCookie(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleClient}
	auth := &stubAuthService{currentUserFn: func(_ context.Context, token string) (*domain.User, error) {
		if token != "raw" {
			t.Fatalf("unexpected token %q", token)
		}
		return user, nil
	}}
	value, _ := newCodec().Encode("raw", time.Now().Add(time.Hour))

	res, token, err := runIdentity(t, auth, &http.Cookie{Name: "imoveis.sid", Value: value})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Done || res.User != user || token != "raw" {
		t.Fatalf("unexpected resolution: %+v token=%q", res, token)
	}
}

func TestIdentity_VanishedUserKeepsCause(t *testing.T) {
	auth := &stubAuthService{currentUserFn: func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}}
	value, _ := newCodec().Encode("raw", time.Now().Add(time.Hour))

	res, _, err := runIdentity(t, auth, &http.Cookie{Name: "imoveis.sid", Value: value})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(res.Cause, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound cause, got %v", res.Cause)
	}
}

func TestIdentity_StoreFaultAborts(t *testing.T) {
	boom := errors.New("redis down")
	auth := &stubAuthService{currentUserFn: func(context.Context, string) (*domain.User, error) {
		return nil, boom
	}}
	value, _ := newCodec().Encode("raw", time.Now().Add(time.Hour))

	_, _, err := runIdentity(t, auth, &http.Cookie{Name: "imoveis.sid", Value: value})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store fault, got %v", err)
	}
}

func runGate(t *testing.T, role domain.Role, res *access.Resolution) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if res != nil {
		c.Set(identityKey, *res)
	}

	called := false
	err := RequireRole(role)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func TestRequireRole_Proceeds(t *testing.T) {
	res := access.Resolved(&domain.User{Role: domain.RoleAdmin}, nil)
	rec, called, err := runGate(t, domain.RoleAdmin, &res)
	if err != nil || !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got called=%v code=%d err=%v", called, rec.Code, err)
	}
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	res := access.Resolved(nil, domain.ErrUnauthenticated)
	rec, called, err := runGate(t, domain.RoleClient, &res)
	if err != nil || called {
		t.Fatalf("unexpected called=%v err=%v", called, err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body gateResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Redirect != access.LoginPath {
		t.Fatalf("expected redirect to login, got %q", body.Redirect)
	}
}

func TestRequireRole_WrongRoleGoesHome(t *testing.T) {
	res := access.Resolved(&domain.User{Role: domain.RoleClient}, nil)
	rec, called, _ := runGate(t, domain.RoleAdmin, &res)
	if called {
		t.Fatalf("handler must not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body gateResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Redirect != access.ClientHomePath {
		t.Fatalf("expected client home, got %q", body.Redirect)
	}
}

func TestRequireRole_PendingIsAnError(t *testing.T) {
	_, called, err := runGate(t, domain.RoleAdmin, nil)
	if called || !errors.Is(err, errIdentityPending) {
		t.Fatalf("expected pending error, got called=%v err=%v", called, err)
	}
}
