package wallet

import (
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

// PostEnsureRoute creates the wallet row on first login and refreshes last_login afterwards.
func PostEnsureRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/ensure", postEnsureHandler(s))
}

func postEnsureHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostWalletEnsurePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		w, err := s.Wallets.Ensure(ctx, swag.StringValue(body.WalletAddress))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to ensure wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, w.ToTypes())
	}
}
