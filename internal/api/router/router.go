package router

import (
	"net/http"
	"strings"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/handlers"
	"github.com/arcregistry/wallet-activation/internal/api/httperrors"
	"github.com/arcregistry/wallet-activation/internal/api/middleware"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Init builds the echo instance, attaches the middleware chain and all routes.
func Init(s *api.Server) error {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true

	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	// ---
	// General middleware
	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.RecoverWithConfig(echoMiddleware.RecoverConfig{
			LogErrorFunc: middleware.LogRecoveredPanic,
		}))
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:         s.Config.Logger.RequestLevel,
			LogRequestURI: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Path(), "/-/") || c.Path() == "/metrics"
			},
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: s.Config.Echo.CORSAllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if s.Config.Echo.EnableMetricsMiddleware {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "wallet_activation",
			Registerer: s.Metrics.Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	} else {
		log.Warn().Msg("Disabling metrics middleware due to environment config")
	}

	s.Router = &api.Router{
		Routes:     nil, // will be populated by handlers.AttachAllRoutes(s)
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),

		// Activation endpoints are polled by clients, they are rate limited per client IP.
		APIV1Activation: s.Echo.Group("/api/v1/activation", activationRateLimiter(s)),
		APIV1Wallet:     s.Echo.Group("/api/v1/wallet"),
	}

	s.Echo.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: s.Metrics.Registry}))

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)

	return nil
}

func activationRateLimiter(s *api.Server) echo.MiddlewareFunc {
	cfg := s.Config.Activation

	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Skipper: func(_ echo.Context) bool {
			return cfg.RateLimitPerSecond <= 0
		},
		Store: echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.RateLimitPerSecond),
			Burst: cfg.RateLimitBurst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			log.Ctx(c.Request().Context()).Debug().Str("client_ip", identifier).Msg("Activation request rate limited")
			return httperrors.ErrTooManyRequests
		},
	})
}
