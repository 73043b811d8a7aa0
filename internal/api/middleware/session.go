package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

const (
	identityKey = "identity"
	tokenKey    = "session_token"
)

// Identity resolves the session cookie into an access.Resolution for every
// request. It never rejects a request on its own; RequireRole does that.
// Store faults abort the request as internal errors.
func Identity(auth ports.AuthService, codec *CookieCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(codec.Name())
			if err != nil || cookie.Value == "" {
				c.Set(identityKey, access.Resolved(nil, domain.ErrUnauthenticated))
				return next(c)
			}

			token, err := codec.Decode(cookie.Value)
			if err != nil {
				log.Debug().Str("request_id", requestID(c)).Msg("rejected session cookie")
				c.Set(identityKey, access.Resolved(nil, domain.ErrUnauthenticated))
				return next(c)
			}
			c.Set(tokenKey, token)

			user, err := auth.CurrentUser(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(identityKey, access.Resolved(user, nil))
			case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrUserNotFound):
				c.Set(identityKey, access.Resolved(nil, err))
			default:
				return err
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the resolution stored by Identity. Without the
// middleware the resolution is still pending.
func IdentityFrom(c echo.Context) access.Resolution {
	res, ok := c.Get(identityKey).(access.Resolution)
	if !ok {
		return access.Resolution{}
	}
	return res
}

// SessionToken returns the raw token carried by a valid cookie, if any.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
