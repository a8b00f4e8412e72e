// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/ddl"
)

// dropTableCmd is the drop_table operation of the DDL Compiler (C5).
func dropTableCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "drop-table",
		Short: "Drop a table and, if temporal, its history and view",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.Execute(cmd.Context(), &ddl.OpDropTable{Name: table}); err != nil {
				return err
			}

			cmd.Printf("dropped table %q\n", table)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "logical table name")
	cmd.MarkFlagRequired("table")

	return cmd
}
