// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bitempodb/bitempodb/cmd/flags"
	"github.com/bitempodb/bitempodb/pkg/engine"
)

// Version is the bitempodb CLI version.
var Version = "development"

func init() {
	viper.SetEnvPrefix("BITEMPODB")
	viper.AutomaticEnv()

	PgConnectionFlags(rootCmd)
}

// PgConnectionFlags is exposed for subcommand packages under test.
func PgConnectionFlags(cmd *cobra.Command) {
	flags.PgConnectionFlags(cmd)
}

var rootCmd = &cobra.Command{
	Use:          "bitempodb",
	SilenceUsage: true,
	Version:      Version,
}

// NewEngine opens and bootstraps an Engine against the configured
// Postgres URL, the entrypoint every subcommand below uses.
func NewEngine(ctx context.Context) (*engine.Engine, error) {
	e, err := engine.New(ctx, flags.PostgresURL())
	if err != nil {
		return nil, err
	}
	if err := e.Bootstrap(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Execute executes the root command.
func Execute() error {
	rootCmd.AddCommand(createTableCmd())
	rootCmd.AddCommand(addColumnCmd())
	rootCmd.AddCommand(dropTableCmd())
	rootCmd.AddCommand(asOfCmd())
	rootCmd.AddCommand(timestampsCmd())
	rootCmd.AddCommand(amendCmd())
	rootCmd.AddCommand(statusCmd())

	return rootCmd.Execute()
}
