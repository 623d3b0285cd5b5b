package activation

import (
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/activation/quote"
	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/httperrors"
	"github.com/arcregistry/wallet-activation/internal/i18n"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const headerAcceptLanguage = "Accept-Language"

// respond renders res with a message localized to the client's Accept-Language.
func respond(s *api.Server, c echo.Context, operation string, res *activation.Result) error {
	lang := s.I18n.ParseAcceptLanguage(c.Request().Header.Get(headerAcceptLanguage))

	var message string
	if res.Reason != verify.ReasonNone {
		message = s.I18n.Translate("activation.reason."+res.Reason.String(), lang)
	} else {
		data := i18n.Data{"Amount": res.CryptoAmount().String()}
		if res.Chain != nil {
			data["Symbol"] = res.Chain.Symbol
		}
		message = s.I18n.Translate("activation.status."+res.Status.String(), lang, data)
	}

	util.LogFromEchoContext(c).Debug().
		Str("operation", operation).
		Str("status", res.Status.String()).
		Str("reason", res.Reason.String()).
		Bool("fee_paid", util.FalseIfNil(res.FeePaid)).
		Msg("Activation request handled")

	s.Metrics.ObserveActivation(operation, res.Status.String(), res.Reason.String())
	if res.Promoted {
		s.Metrics.ObserveWalletPromotion()
	}

	return util.ValidateAndReturn(c, http.StatusOK, res.ToTypes(message))
}

// toHTTPError maps activation errors to their public HTTP representation.
func toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, activation.ErrUnknownChain):
		return httperrors.ErrBadRequestUnknownChain
	case errors.Is(err, activation.ErrChainUnavailable):
		return httperrors.ErrInternalNoChainConfigured
	case errors.Is(err, activation.ErrConfiguration):
		util.LogFromEchoContext(c).Error().Err(err).Msg("Activation chain misconfigured")
		return httperrors.ErrInternalChainMisconfigured
	case errors.Is(err, quote.ErrPriceFeedUnavailable):
		return httperrors.ErrServiceUnavailablePriceFeed
	case errors.Is(err, activation.ErrRegistrationNotFound):
		return httperrors.ErrNotFoundRegistration
	}

	return err
}

func optionalChainID(chainID *int64) *int {
	if chainID == nil {
		return nil
	}

	id := int(*chainID)
	return &id
}
