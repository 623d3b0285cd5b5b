package httperrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arcregistry/wallet-activation/internal/types"
	oaErrors "github.com/go-openapi/errors"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

type HTTPError struct {
	types.HTTPError

	// RetryAfter is sent as Retry-After header (seconds) when set.
	RetryAfter int `json:"-"`
}

type HTTPValidationError struct {
	types.HTTPValidationError
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  errorType.Pointer(),
			Title: swag.String(title),
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:   swag.Int64(int64(code)),
			Type:   errorType.Pointer(),
			Title:  swag.String(title),
			Detail: detail,
		},
	}
}

// NewFromEcho converts an echo.HTTPError into our public error representation.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return NewHTTPError(e.Code, types.PublicHTTPErrorTypeGeneric, http.StatusText(e.Code))
}

func (e *HTTPError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)

	if len(e.Detail) > 0 {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}
	if len(e.InternalError) > 0 {
		fmt.Fprintf(&b, ", %s", e.InternalError)
	}

	return b.String()
}

// WithRetryAfter returns a copy of e announcing when the client may try again.
func (e *HTTPError) WithRetryAfter(seconds int) *HTTPError {
	cp := *e
	cp.RetryAfter = seconds
	return &cp
}

func NewHTTPValidationError(code int, errorType types.PublicHTTPErrorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		HTTPValidationError: types.HTTPValidationError{
			HTTPError: types.HTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  errorType.Pointer(),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

// NewHTTPValidationErrorFromCompositeError flattens the go-openapi composite error into validation details.
func NewHTTPValidationErrorFromCompositeError(err *oaErrors.CompositeError) *HTTPValidationError {
	details := make([]*types.HTTPValidationErrorDetail, 0, len(err.Errors))
	collectValidationDetails(err, &details)

	return NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), details)
}

func collectValidationDetails(err error, details *[]*types.HTTPValidationErrorDetail) {
	switch e := err.(type) { //nolint:errorlint
	case *oaErrors.CompositeError:
		for _, inner := range e.Errors {
			collectValidationDetails(inner, details)
		}
	case *oaErrors.Validation:
		*details = append(*details, &types.HTTPValidationErrorDetail{
			Key:   swag.String(e.Name),
			In:    swag.String(e.In),
			Error: swag.String(e.Error()),
		})
	default:
		*details = append(*details, &types.HTTPValidationErrorDetail{
			Key:   swag.String("body"),
			In:    swag.String("body"),
			Error: swag.String(err.Error()),
		})
	}
}

func (e *HTTPValidationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTPValidationError %d (%s): %s", *e.Code, *e.Type, *e.Title)

	if len(e.Detail) > 0 {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}
	if len(e.InternalError) > 0 {
		fmt.Fprintf(&b, ", %s", e.InternalError)
	}
	if len(e.ValidationErrors) > 0 {
		b.WriteString(" - Validation: ")
		for i, ve := range e.ValidationErrors {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (in %s): %s", *ve.Key, *ve.In, *ve.Error)
		}
	}

	return b.String()
}
