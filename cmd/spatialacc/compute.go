// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/internal/config"
	"github.com/katalvlaran/spatialacc/od"
	"github.com/katalvlaran/spatialacc/odsource"
)

func computeCmd() *cobra.Command {
	var (
		output string
		out    string
		table  string
	)
	cmd := &cobra.Command{
		Use:   "compute [od-table]",
		Short: "Compute accessibility scores and summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			records, err := loadRecords(cmd, args[0], table)
			if err != nil {
				return err
			}

			res, err := accessibility.Compute(records, cfg.AccessibilityOptions(logger)...)
			if err != nil {
				return err
			}

			return withOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return writeResult(w, output, res)
			})
		},
	}
	config.AddComputeFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table|json|yaml")
	cmd.Flags().StringVar(&out, "out", "", "write output to a file; .zst or .lz4 compresses it")
	cmd.Flags().StringVar(&table, "table", odsource.DefaultTable, "SQLite table name")

	return cmd
}

func validateCmd() *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "validate [od-table]",
		Short: "Check that an OD table is complete and consistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd, args[0], table)
			if err != nil {
				return err
			}
			summary, err := od.Normalize(records)
			if err != nil {
				return err
			}
			idx, err := od.NewIndex(summary)
			if err != nil {
				return err
			}
			if err = od.ValidateComplete(records, idx); err != nil {
				return err
			}
			printInputs(cmd.OutOrStdout(), summary)
			fmt.Fprintf(cmd.OutOrStdout(), "Result: VALID (%d records)\n", len(records))

			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", odsource.DefaultTable, "SQLite table name")

	return cmd
}

func loadRecords(cmd *cobra.Command, path, table string) ([]od.Record, error) {
	src, err := odsource.Open(path, odsource.WithTable(table))
	if err != nil {
		return nil, err
	}

	return src.Records(cmd.Context())
}

// withOutput runs write against stdout, or against the file at path with
// compression chosen by its extension. The codec writer is closed on every
// path, so a failed write still flushes what it produced.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := odsource.NewWriter(f, odsource.CodecFromPath(path))
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			_ = w.Close()
		}
	}()
	if err = write(w); err != nil {
		return err
	}
	closed = true

	return w.Close()
}
