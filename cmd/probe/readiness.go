package probe

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs readiness probes

Checks that the database is reachable within SERVER_MANAGEMENT_READINESS_TIMEOUT_SEC.
Exits with code 1 if any probe fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse flags")
			}

			readinessCmdFunc(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessCmdFunc(ctx context.Context, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	db, err := api.NewDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "readiness: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	errs := runReadiness(ctx, cfg, db)
	report("readiness", errs, verbose)
}

func runReadiness(ctx context.Context, cfg config.Server, db *sql.DB) []error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Management.ReadinessTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return []error{fmt.Errorf("database ping: %w", err)}
	}

	return nil
}

func report(probe string, errs []error, verbose bool) {
	if len(errs) == 0 {
		if verbose {
			fmt.Printf("%s: ok\n", probe)
		}
		return
	}

	if verbose {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", probe, err)
		}
	}

	os.Exit(1)
}
