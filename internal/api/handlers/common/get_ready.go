package common

import (
	"context"
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/labstack/echo/v4"
)

// StatusNotReady is returned while the server is not able to serve requests.
const StatusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check
// This endpoint returns 200 when our Service is ready to serve traffic (i.e. respond to queries).
// Does read-only probes apart from the general server ready state.
// Note that /-/ready is typically public (and not shielded by a mgmt-secret), we thus prevent information leakage here and only return `"Ready."`.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.ReadinessTimeout)
		defer cancel()

		if !s.Ready() {
			util.LogFromEchoContext(c).Warn().Msg("Readiness probe: server is not fully initialized")
			return c.String(StatusNotReady, "Not ready.")
		}

		if err := s.DB.PingContext(ctx); err != nil {
			util.LogFromEchoContext(c).Warn().Err(err).Msg("Readiness probe: database ping failed")
			return c.String(StatusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
