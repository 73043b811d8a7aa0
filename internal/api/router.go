package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/imoveiscrm/realestate-api/docs"
	"github.com/imoveiscrm/realestate-api/internal/api/handler"
	"github.com/imoveiscrm/realestate-api/internal/api/middleware"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth       ports.AuthService
	Properties ports.PropertyService
	Cookies    *middleware.CookieCodec
	Health     map[string]handler.Pinger
	Log        zerolog.Logger

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "realestate",
		Registerer: registerer,
	}))

	// --- Operational routes ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	apiGroup := e.Group("/api", middleware.Identity(d.Auth, d.Cookies, d.Log))

	auth := handler.NewAuthHandler(d.Auth, d.Cookies, d.Log)
	apiGroup.POST("/auth/login", auth.Login)
	apiGroup.POST("/auth/register", auth.Register)
	apiGroup.POST("/auth/logout", auth.Logout)
	apiGroup.GET("/auth/me", handler.WithIdentity(auth.Me))
	apiGroup.GET("/auth/gate", handler.WithIdentity(auth.Gate))

	props := handler.NewPropertyHandler(d.Properties)
	apiGroup.GET("/properties", props.List)
	apiGroup.GET("/properties/:id", props.Get)

	requireAdmin := middleware.RequireAdmin()
	apiGroup.POST("/properties", props.Create, requireAdmin)
	apiGroup.PATCH("/properties/:id", props.Update, requireAdmin)
	apiGroup.DELETE("/properties/:id", props.Delete, requireAdmin)

	requireClient := middleware.RequireClient()
	apiGroup.POST("/properties/:id/like", handler.WithIdentity(props.Like), requireClient)
	apiGroup.DELETE("/properties/:id/like", handler.WithIdentity(props.Unlike), requireClient)
	apiGroup.GET("/me/likes", handler.WithIdentity(props.MyLikes), requireClient)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
