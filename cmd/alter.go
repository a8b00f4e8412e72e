// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/ddl"
)

// addColumnCmd is the add_column operation of the DDL Compiler (C5).
func addColumnCmd() *cobra.Command {
	var table, name, colType, defaultValue string
	var nullable, unique bool
	var hasDefault bool

	cmd := &cobra.Command{
		Use:   "add-column",
		Short: "Add a column to an existing table",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			column := ddl.Column{Name: name, Type: colType, Nullable: nullable, Unique: unique}
			if hasDefault {
				column.Default = &defaultValue
			}

			op := &ddl.OpAddColumn{Table: table, Column: column}
			if err := e.Execute(cmd.Context(), op); err != nil {
				return err
			}

			cmd.Printf("added column %q to %q\n", name, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "logical table name")
	cmd.Flags().StringVar(&name, "name", "", "column name")
	cmd.Flags().StringVar(&colType, "type", "", "column type, e.g. text, bigint")
	cmd.Flags().BoolVar(&nullable, "nullable", true, "whether the column accepts NULL")
	cmd.Flags().BoolVar(&unique, "unique", false, "whether the column has a UNIQUE constraint")
	cmd.Flags().StringVar(&defaultValue, "default", "", "column default value")
	cmd.Flags().BoolVar(&hasDefault, "has-default", false, "set to apply --default")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")

	return cmd
}
