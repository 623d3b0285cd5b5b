package util

import (
	"errors"
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api/httperrors"
	oaErrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
)

var defaultEchoBinder = &echo.DefaultBinder{}

// BindAndValidateBody binds the request body (only) and validates it afterwards.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	if err := defaultEchoBinder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// BindAndValidateQueryParams binds the query params (only) and validates them afterwards.
func BindAndValidateQueryParams(c echo.Context, v runtime.Validatable) error {
	if err := defaultEchoBinder.BindQueryParams(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates a response payload and writes it as JSON with the given status code.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := validatePayload(c, v); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *oaErrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromEchoContext(c).Debug().Errs("validation_errors", compositeError.Errors).Msg("Payload did not match schema, returning HTTP validation error")

			return httperrors.NewHTTPValidationErrorFromCompositeError(compositeError)
		}

		LogFromEchoContext(c).Error().Err(err).Msg("Failed to validate payload, returning generic HTTP error")

		return httperrors.NewFromEcho(echo.NewHTTPError(http.StatusBadRequest, err.Error()))
	}

	return nil
}
