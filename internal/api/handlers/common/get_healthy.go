package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/labstack/echo/v4"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Health check
// Returns an overview of the probes and the build version. Answers 521 if any probe failed.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.LivenessTimeout)
		defer cancel()

		var b strings.Builder
		healthy := true

		if !s.Ready() {
			healthy = false
			b.WriteString("Ready: false\n")
		} else {
			b.WriteString("Ready: true\n")
		}

		if err := probeDatabase(ctx, s); err != nil {
			healthy = false
			fmt.Fprintf(&b, "Database: %v\n", err)
		} else {
			b.WriteString("Database: ok\n")
		}

		chains, err := s.Chains.GetActiveChains(ctx)
		if err != nil {
			healthy = false
			fmt.Fprintf(&b, "Chains: %v\n", err)
		} else {
			fmt.Fprintf(&b, "Chains: %d active\n", len(chains))
		}

		fmt.Fprintf(&b, "Recipient check bypass: %v\n", s.Config.Activation.DevBypassRecipientCheck && !s.Config.Activation.IsProduction())
		fmt.Fprintf(&b, "Build: %s\n", config.GetFormattedBuildArgs())

		if !healthy {
			return c.String(StatusNotReady, b.String())
		}

		return c.String(http.StatusOK, b.String())
	}
}

func probeDatabase(ctx context.Context, s *api.Server) error {
	if s.DB == nil {
		return fmt.Errorf("not initialized")
	}

	if err := s.DB.PingContext(ctx); err != nil {
		return err
	}

	var one int
	return s.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}
