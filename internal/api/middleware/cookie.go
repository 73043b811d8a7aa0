package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs the raw session token into the session cookie. The
// cookie expires together with the server-side session.
type CookieCodec struct {
	name   string
	secret []byte
	secure bool
	now    func() time.Time
}

func NewCookieCodec(name string, secret []byte, secure bool) *CookieCodec {
	return &CookieCodec{name: name, secret: secret, secure: secure, now: time.Now}
}

func (cc *CookieCodec) Name() string { return cc.name }

func (cc *CookieCodec) Encode(token string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(cc.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry and returns the raw token.
func (cc *CookieCodec) Decode(value string) (string, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	}, jwt.WithTimeFunc(cc.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.SessionID == "" {
		return "", ErrInvalidCookie
	}
	return claims.SessionID, nil
}

// Write attaches the session cookie to the response.
func (cc *CookieCodec) Write(c echo.Context, token string, expiresAt time.Time) error {
	value, err := cc.Encode(token, expiresAt)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     cc.name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(expiresAt.Sub(cc.now()).Seconds()),
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear tells the browser to drop the session cookie.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
