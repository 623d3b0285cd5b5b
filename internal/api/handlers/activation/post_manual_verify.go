package activation

import (
	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostManualVerifyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Activation.POST("/manual-verify", postManualVerifyHandler(s))
}

func postManualVerifyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostActivationManualVerifyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Activation.ManualVerify(ctx, activation.ManualVerifyRequest{
			WalletAddress:   swag.StringValue(body.WalletAddress),
			ChainID:         optionalChainID(body.ChainID),
			TransactionHash: swag.StringValue(body.TransactionHash),
		})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to verify activation payment")
			return toHTTPError(c, err)
		}

		return respond(s, c, "manual_verify", res)
	}
}
