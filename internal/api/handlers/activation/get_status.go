package activation

import (
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/types/activation"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/labstack/echo/v4"
)

func GetStatusRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Activation.GET("/status", getStatusHandler(s))
}

func getStatusHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		params := activation.NewGetActivationStatusRouteParams()
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		res, err := s.Activation.PaymentStatus(ctx, params.WalletAddress)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to get payment status")
			return toHTTPError(c, err)
		}

		return respond(s, c, "status", res)
	}
}
