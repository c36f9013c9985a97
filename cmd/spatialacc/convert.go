// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spatialacc/odsource"
)

// convertCmd copies an OD table between CSV, YAML and SQLite, compressing
// stream targets that end in .zst or .lz4.
func convertCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert [src] [dst]",
		Short: "Convert an OD table between csv, yaml and sqlite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd, args[0], from)
			if err != nil {
				return err
			}
			if err = odsource.Save(cmd.Context(), args[1], records, odsource.WithTable(to)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(records), args[1])

			return nil
		},
	}
	cmd.Flags().StringVar(&from, "table", odsource.DefaultTable, "SQLite table to read")
	cmd.Flags().StringVar(&to, "to-table", odsource.DefaultTable, "SQLite table to write")

	return cmd
}
