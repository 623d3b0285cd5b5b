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

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs liveness probes

Checks the database can execute queries within SERVER_MANAGEMENT_LIVENESS_TIMEOUT_SEC
and that the configured asset directories are mounted.
Exits with code 1 if any probe fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse flags")
			}

			livenessCmdFunc(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessCmdFunc(ctx context.Context, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	db, err := api.NewDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "liveness: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	errs := runLiveness(ctx, cfg, db)
	report("liveness", errs, verbose)
}

func runLiveness(ctx context.Context, cfg config.Server, db *sql.DB) []error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Management.LivenessTimeout)
	defer cancel()

	var errs []error

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		errs = append(errs, fmt.Errorf("database query: %w", err))
	}

	for _, dir := range []string{cfg.Paths.MigrationsDir, cfg.I18n.BundleDirAbs} {
		info, err := os.Stat(dir)
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", dir, err))
			continue
		}
		if !info.IsDir() {
			errs = append(errs, fmt.Errorf("%s is not a directory", dir))
		}
	}

	return errs
}
