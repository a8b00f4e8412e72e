// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/timemachine"
	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

// asOfCmd is the As-Of Query Rewriter's (C7) `as_of(T, base_scope)`
// entrypoint: it builds the rewritten relation for table at the given
// instant and prints the resulting rows as JSON.
func asOfCmd() *cobra.Command {
	var table, at, where, order string

	cmd := &cobra.Command{
		Use:   "as-of",
		Short: "Query a table as it stood at a given instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			t, err := timeutil.Parse(at)
			if err != nil {
				return err
			}

			rel := timemachine.NewSimpleRelation(table)
			if err := timemachine.AsOf(cmd.Context(), rel, table, t, where, order, e.Cache); err != nil {
				return err
			}

			rows, err := e.DB.QueryContext(cmd.Context(), rel.SQL())
			if err != nil {
				return err
			}
			defer rows.Close()

			return printRowsAsJSON(cmd, rows)
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "logical table name")
	cmd.Flags().StringVar(&at, "at", "", "instant to read as of, YYYY-MM-DD HH:MM:SS[.ffffff] UTC")
	cmd.Flags().StringVar(&where, "where", "", "additional WHERE expression to merge into the query")
	cmd.Flags().StringVar(&order, "order-by", "", "ORDER BY expression to merge into the query")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("at")

	return cmd
}

// printRowsAsJSON renders rows generically, one JSON object per line,
// for commands that don't know their result shape ahead of time.
func printRowsAsJSON(cmd *cobra.Command, rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		record := make(map[string]any, len(cols))
		for i, c := range cols {
			record[c] = values[i]
		}

		line, err := json.Marshal(record)
		if err != nil {
			return err
		}
		cmd.Println(string(line))
	}

	return rows.Err()
}
