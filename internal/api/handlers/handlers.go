package handlers

import (
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/handlers/activation"
	"github.com/arcregistry/wallet-activation/internal/api/handlers/common"
	"github.com/arcregistry/wallet-activation/internal/api/handlers/wallet"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		activation.GetChainsRoute(s),
		activation.GetStatusRoute(s),
		activation.PostCheckRoute(s),
		activation.PostManualVerifyRoute(s),
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		wallet.GetWalletRoute(s),
		wallet.PostEnsureRoute(s),
	}
}
