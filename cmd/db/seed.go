package db

import (
	"context"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSeed() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserts or updates the supported chains",
		Long: `Inserts or updates the supported chains

Reads the chain list from SERVER_PATHS_SEED_CHAINS_FILE.
Existing chains are updated in place, chains missing from the file are left untouched.`,
		Run: func(cmd *cobra.Command, _ []string) {
			seedCmdFunc(cmd.Context())
		},
	}
}

func seedCmdFunc(ctx context.Context) {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	db, err := api.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	n, err := store.New(db).SeedChainsFile(ctx, cfg.Paths.SeedChainsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Paths.SeedChainsFile).Msg("Failed to seed chains")
	}

	log.Info().Int("chainsCount", n).Str("file", cfg.Paths.SeedChainsFile).Msg("Successfully seeded chains")
}
