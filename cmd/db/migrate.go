package db

import (
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all pending database migrations",
		Long: `Executes all pending database migrations

Uses migrations from SERVER_PATHS_MIGRATIONS_DIR.`,
		Run: func(_ *cobra.Command, _ []string) {
			migrateCmdFunc()
		},
	}
}

func migrateCmdFunc() {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	db, err := api.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	n, err := store.Migrate(db, cfg.Paths.MigrationsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Paths.MigrationsDir).Msg("Error while applying migrations")
	}

	log.Info().Int("appliedMigrationsCount", n).Msg("Successfully applied migrations")
}
