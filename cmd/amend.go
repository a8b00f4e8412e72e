// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bitempodb/bitempodb/pkg/amend"
	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

// amendCmd is the Amendment Utility's (C9) `amend_period!` entrypoint.
func amendCmd() *cobra.Command {
	var table, from, to string
	var hid int64

	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Directly rewrite a history row's validity period (UTC only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			fromT, err := timeutil.Parse(from)
			if err != nil {
				return err
			}
			toT, err := timeutil.Parse(to)
			if err != nil {
				return err
			}

			if err := amend.Period(cmd.Context(), e.DB, table, hid, fromT, toT); err != nil {
				return err
			}

			cmd.Printf("amended hid %d of %q\n", hid, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "logical table name")
	cmd.Flags().Int64Var(&hid, "hid", 0, "history row id to amend")
	cmd.Flags().StringVar(&from, "from", "", "new valid_from, UTC wire format")
	cmd.Flags().StringVar(&to, "to", "", "new valid_to, UTC wire format")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("hid")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
