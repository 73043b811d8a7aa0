package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/api/metrics"
	"github.com/imoveiscrm/realestate-api/internal/api/middleware"
	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	codec       *middleware.CookieCodec
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, codec *middleware.CookieCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec, log: log}
}

// Login authenticates a user and opens a cookie session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_request").Inc()
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if err := h.startSession(c, res); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{User: res.User, Message: "login successful"})
}

// Register creates a client account and signs it in.
//
// @Summary      Register a new client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_request").Inc()
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, clientInfo(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if err := h.startSession(c, res); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: res.User, Message: "account created"})
}

// Logout destroys the current session. It succeeds without a session too.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionToken(c)); err != nil {
		return err
	}
	h.codec.Clear(c)
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the signed-in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context, who access.Resolution) error {
	if who.User == nil {
		if errors.Is(who.Cause, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, meResponse{User: who.User})
}

// Gate evaluates the access gate for a view that requires role.
//
// @Summary      Evaluate access gate
// @Tags         auth
// @Produce      json
// @Param        role  query     string  false  "Required role"  Enums(admin, client)
// @Success      200   {object}  gateResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/gate [get]
func (h *AuthHandler) Gate(c echo.Context, who access.Resolution) error {
	role := domain.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return domain.ErrInvalidRole
	}

	d := access.Decide(who, role)
	return c.JSON(http.StatusOK, gateResponse{
		Outcome: d.Outcome.String(),
		Target:  d.Target,
		User:    who.User,
	})
}

// startSession sets the cookie. When that fails the fresh session is
// dropped so no orphaned session outlives the request.
func (h *AuthHandler) startSession(c echo.Context, res *ports.AuthResult) error {
	if err := h.codec.Write(c, res.Token, res.Session.ExpiresAt); err != nil {
		if lerr := h.authService.Logout(c.Request().Context(), res.Token); lerr != nil {
			h.log.Error().Err(lerr).Str("user_id", res.User.ID).Msg("failed to drop session after cookie error")
		}
		return err
	}
	return nil
}
