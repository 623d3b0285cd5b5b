package activation

import (
	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostCheckRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Activation.POST("/check", postCheckHandler(s))
}

func postCheckHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostActivationCheckPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Activation.Check(ctx, activation.CheckRequest{
			WalletAddress:   swag.StringValue(body.WalletAddress),
			ChainID:         optionalChainID(body.ChainID),
			TransactionHash: body.TransactionHash,
		})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to check activation")
			return toHTTPError(c, err)
		}

		return respond(s, c, "check", res)
	}
}
