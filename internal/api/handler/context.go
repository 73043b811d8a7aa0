package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/imoveiscrm/realestate-api/internal/api/middleware"
	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

// IdentityHandlerFunc is a handler that is given the caller's identity
// instead of reading it from the request context.
type IdentityHandlerFunc func(c echo.Context, who access.Resolution) error

// WithIdentity adapts h to echo, passing the resolution produced by
// middleware.Identity.
func WithIdentity(h IdentityHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h(c, middleware.IdentityFrom(c))
	}
}

// signedIn returns the user of a completed resolution. Routes behind
// RequireRole always have one.
func signedIn(who access.Resolution) (*domain.User, error) {
	if !who.Done || who.User == nil {
		return nil, domain.ErrUnauthenticated
	}
	return who.User, nil
}

func clientInfo(c echo.Context) ports.ClientInfo {
	return ports.ClientInfo{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
