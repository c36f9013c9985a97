// SPDX-License-Identifier: MIT

// Command spatialacc scores spatial accessibility from OD travel-cost tables.
//
//	spatialacc compute costs.csv --model 2SFCA --threshold 1800
//	spatialacc validate costs.csv.zst
//	spatialacc convert costs.csv costs.db
//	spatialacc serve --addr :8080
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/spatialacc/internal/config"
	"github.com/katalvlaran/spatialacc/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spatialacc",
		Short:         "Spatial accessibility scoring (2SFCA, Gravity, Exponential)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "YAML configuration file")
	config.AddLogFlags(root.PersistentFlags())

	root.AddCommand(computeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(convertCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	return root
}

// loadConfig resolves configuration for cmd: defaults, --config file,
// environment and the command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")

	return config.Load(v, path)
}

func newLogger(cfg *config.Config) (logr.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Development)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("spatialacc", version)
		},
	}
}
