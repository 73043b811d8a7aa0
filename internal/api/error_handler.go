package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/api/handler"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string               `json:"error"`
	Details []handler.FieldError `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns the single place where failures become HTTP
// responses. Known domain errors get fixed codes and messages; anything else
// is logged and rendered as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "invalid data", Details: ve.Details}
	}

	// Echo's own errors (router 404/405, body too large, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrUserExists.Error()}
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrEmptyPatch):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, errorResponse{Error: "property not found"}
	case errors.Is(err, domain.ErrLikeNotFound):
		return http.StatusNotFound, errorResponse{Error: "like not found"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
