// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/timestamps"
)

// timestampsCmd is the Timestamp Enumerator's (C8) `timestamps(record)`
// entrypoint.
func timestampsCmd() *cobra.Command {
	var table string
	var recordID int64
	var hasRecord bool

	cmd := &cobra.Command{
		Use:   "timestamps",
		Short: "List the sorted, distinct change instants for a table (optionally one record)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			var id any
			if hasRecord {
				id = recordID
			}

			instants, err := timestamps.Enumerate(cmd.Context(), &db.ConnDB{Conn: e.Conn()}, e.Router, e.Cache, table, nil, id)
			if err != nil {
				return err
			}

			for _, t := range instants {
				cmd.Println(t.Format("2006-01-02T15:04:05.000000Z"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "logical table name")
	cmd.Flags().Int64Var(&recordID, "id", 0, "scope to one record's id")
	cmd.Flags().BoolVar(&hasRecord, "has-id", false, "set to apply --id")
	cmd.MarkFlagRequired("table")

	return cmd
}
