// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spatialacc/internal/config"
	"github.com/katalvlaran/spatialacc/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve accessibility scoring over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			return server.New(cfg, logger, nil).Run(cmd.Context())
		},
	}
	config.AddComputeFlags(cmd.Flags())
	config.AddServerFlags(cmd.Flags())

	return cmd
}
