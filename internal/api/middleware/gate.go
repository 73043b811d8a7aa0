package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imoveiscrm/realestate-api/internal/api/metrics"
	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

var errIdentityPending = errors.New("identity resolution did not complete")

type gateResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RequireRole lets the request through only when access.Decide proceeds.
// An empty role admits any signed-in user.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.Decide(IdentityFrom(c), role)
			metrics.GateDecisionsTotal.WithLabelValues(d.Outcome.String()).Inc()

			switch d.Outcome {
			case access.Proceed:
				return next(c)
			case access.RedirectToLogin:
				return c.JSON(http.StatusUnauthorized, gateResponse{Error: "not authenticated", Redirect: d.Target})
			case access.RedirectToRoleHome:
				return c.JSON(http.StatusForbidden, gateResponse{Error: "access forbidden", Redirect: d.Target})
			default:
				return errIdentityPending
			}
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc  { return RequireRole(domain.RoleAdmin) }
func RequireClient() echo.MiddlewareFunc { return RequireRole(domain.RoleClient) }
