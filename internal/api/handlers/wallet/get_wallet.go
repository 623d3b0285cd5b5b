package wallet

import (
	"errors"
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/httperrors"
	walletTypes "github.com/arcregistry/wallet-activation/internal/types/wallet"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/labstack/echo/v4"
)

func GetWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("", getWalletHandler(s))
}

func getWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		params := walletTypes.NewGetWalletRouteParams()
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		w, err := s.Wallets.Get(ctx, params.WalletAddress)
		if err != nil {
			if errors.Is(err, wallet.ErrWalletNotFound) {
				return httperrors.ErrNotFoundWallet
			}
			log.Debug().Err(err).Msg("Failed to get wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, w.ToTypes())
	}
}
