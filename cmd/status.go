// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd reports whether the configured connection is reachable and
// bootstrapped, following the teacher's cmd/status.go shape (a cheap
// connectivity/readiness check, not a full schema diff).
func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the configured database is reachable and bootstrapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := NewEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			cmd.Println("ok: connected and bootstrapped")
			return nil
		},
	}

	return cmd
}
