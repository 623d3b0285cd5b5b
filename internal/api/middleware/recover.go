package middleware

import (
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/labstack/echo/v4"
)

// LogRecoveredPanic logs a panic caught by the recover middleware with the request scoped logger.
func LogRecoveredPanic(c echo.Context, err error, stack []byte) error {
	util.LogFromEchoContext(c).Error().
		Err(err).
		Bytes("stack", stack).
		Msg("Recovered from panic")

	return err
}
