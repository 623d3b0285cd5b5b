package httperrors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HTTPErrorHandler renders every error returned by a handler as a JSON HTTPError.
// Unknown errors become a generic 500; their details are only exposed when hideInternalServerErrorDetails is false.
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := log.Ctx(c.Request().Context())
		if logger.GetLevel() == zerolog.Disabled {
			logger = &log.Logger
		}

		var code int
		var body interface{}

		var (
			httpError           *HTTPError
			httpValidationError *HTTPValidationError
			echoHTTPError       *echo.HTTPError
		)

		switch {
		case errors.As(err, &httpError):
			code = int(*httpError.Code)
			body = httpError
			if httpError.RetryAfter > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(httpError.RetryAfter))
			}
		case errors.As(err, &httpValidationError):
			code = int(*httpValidationError.Code)
			body = httpValidationError
		case errors.As(err, &echoHTTPError):
			code = echoHTTPError.Code
			if code == http.StatusTooManyRequests {
				body = NewHTTPError(code, types.PublicHTTPErrorTypeRATELIMITED, http.StatusText(code))
			} else {
				body = NewFromEcho(echoHTTPError)
			}
		default:
			code = http.StatusInternalServerError
			e := NewHTTPError(code, types.PublicHTTPErrorTypeGeneric, http.StatusText(code))
			if !hideInternalServerErrorDetails {
				e.InternalError = err.Error()
			}
			body = e
		}

		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).Int("status", code).Msg("Request failed with server error")
		} else {
			logger.Debug().Err(err).Int("status", code).Msg("Request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}

		if err != nil {
			logger.Error().Err(err).Msg("Failed to write error response")
		}
	}
}
