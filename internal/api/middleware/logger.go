package middleware

import (
	"time"

	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LoggerConfig struct {
	Skipper       echoMiddleware.Skipper
	Level         zerolog.Level
	LogRequestURI bool
}

// LoggerWithConfig attaches a request scoped zerolog logger to the request context
// and logs every finished request.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = echoMiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// skipped routes (probes, metrics) stay silent, including their handlers
			if config.Skipper(c) {
				nop := zerolog.Nop()
				c.SetRequest(req.WithContext(util.DisableLogger(nop.WithContext(req.Context()), true)))
				return next(c)
			}

			lctx := log.With().Str("method", req.Method)
			if id, ok := util.RequestIDFromContext(req.Context()); ok {
				lctx = lctx.Str("id", id)
			}
			if config.LogRequestURI {
				lctx = lctx.Str("uri", req.RequestURI)
			}
			l := lctx.Logger()

			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			l.WithLevel(config.Level).
				Int("status", res.Status).
				Str("ip", c.RealIP()).
				Dur("duration_ms", time.Since(start)).
				Int64("bytes_out", res.Size).
				Msg("http_request")

			// already handled by c.Error
			return nil
		}
	}
}
