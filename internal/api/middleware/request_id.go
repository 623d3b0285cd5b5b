package middleware

import (
	"context"

	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID sets the X-Request-ID header (keeping a client supplied one) and stores
// the ID in the request context for util.RequestIDFromContext.
func RequestID() echo.MiddlewareFunc {
	return echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := context.WithValue(c.Request().Context(), util.CTXKeyRequestID, id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}
