// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/ddl"
)

// createTableCmd is the create_table operation of the DDL Compiler (C5),
// following the teacher's one-subcommand-per-operation layout
// (cmd/create.go in the teacher issued a single CREATE TABLE migration;
// this one builds a ddl.OpCreateTable instead).
func createTableCmd() *cobra.Command {
	var name, columnsJSON string
	var temporal bool

	cmd := &cobra.Command{
		Use:   "create-table",
		Short: "Create a table, optionally tracked with full bitemporal history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var columns []ddl.Column
			if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
				return fmt.Errorf("parsing --columns: %w", err)
			}

			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			op := &ddl.OpCreateTable{Name: name, Temporal: temporal, Columns: columns}
			if err := e.Execute(cmd.Context(), op); err != nil {
				return err
			}

			cmd.Printf("created table %q (temporal=%t)\n", name, temporal)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "table", "", "logical table name")
	cmd.Flags().StringVar(&columnsJSON, "columns", "[]", `column definitions as a JSON array, e.g. [{"name":"id","type":"bigserial","pk":true}]`)
	cmd.Flags().BoolVar(&temporal, "temporal", true, "track full version history for this table")
	cmd.MarkFlagRequired("table")

	return cmd
}
