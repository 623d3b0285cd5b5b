package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/router"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	migrateFlag = "migrate"
	seedFlag    = "seed"
)

type Flags struct {
	ApplyMigrations bool
	SeedChains      bool
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the activation gateway

Requires configuration through ENV and a fully migrated PostgreSQL database.`,
		Run: func(cmd *cobra.Command, _ []string) {
			flags.ApplyMigrations = viper.GetBool(migrateFlag)
			flags.SeedChains = viper.GetBool(seedFlag)

			if err := run(cmd.Context(), flags); err != nil {
				log.Fatal().Err(err).Msg("Server exited with error")
			}
		},
	}

	cmd.Flags().BoolP(migrateFlag, "m", false, "If set, applies pending database migrations before starting the server.")
	cmd.Flags().BoolP(seedFlag, "s", false, "If set, upserts the chains file before starting the server.")

	// Flags may also be set through ENV, e.g. SERVER_MIGRATE=true.
	viper.SetEnvPrefix("server")
	viper.AutomaticEnv()
	if err := viper.BindPFlag(migrateFlag, cmd.Flags().Lookup(migrateFlag)); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind migrate flag")
	}
	if err := viper.BindPFlag(seedFlag, cmd.Flags().Lookup(seedFlag)); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind seed flag")
	}

	return cmd
}

func run(ctx context.Context, flags Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		if flags.ApplyMigrations {
			n, err := store.Migrate(s.DB, cfg.Paths.MigrationsDir)
			if err != nil {
				return err
			}
			log.Info().Int("appliedMigrationsCount", n).Msg("Applied pending migrations")
		}

		if flags.SeedChains {
			n, err := store.New(s.DB).SeedChainsFile(ctx, cfg.Paths.SeedChainsFile)
			if err != nil {
				return err
			}
			log.Info().Int("chainsCount", n).Msg("Seeded chains")
		}

		if err := router.Init(s); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start()
		}()

		log.Info().Str("address", cfg.Echo.ListenAddress).Msg("Server started")

		select {
		case <-ctx.Done():
			log.Info().Msg("Received shutdown signal")
			return nil
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	})
}
