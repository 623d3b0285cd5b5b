package activation

import (
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/labstack/echo/v4"
)

func GetChainsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Activation.GET("/chains", getChainsHandler(s))
}

func getChainsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		chains, err := s.Chains.GetActiveChains(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to get chains")
			return err
		}

		chainItems := make([]*types.ChainItem, 0, len(chains))
		for _, chain := range chains {
			chainItems = append(chainItems, wallet.ChainToChainItem(chain))
		}

		response := &types.GetChainsResponse{
			Chains: chainItems,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
