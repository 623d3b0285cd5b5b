package cmd

import (
	"fmt"
	"os"

	"github.com/arcregistry/wallet-activation/cmd/db"
	"github.com/arcregistry/wallet-activation/cmd/env"
	"github.com/arcregistry/wallet-activation/cmd/probe"
	"github.com/arcregistry/wallet-activation/cmd/server"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Wallet activation gateway: quotes, registers and verifies cross-chain activation fee payments.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		db.New(),
		env.New(),
		probe.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
