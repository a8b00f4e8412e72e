// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"context"
	"fmt"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ddl/templates"
)

// dropView drops the presentation view; CASCADE also drops its three
// rules, which are owned by the view.
func dropView(ctx context.Context, tx db.DB, table string) error {
	names := namesFor(table)
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP VIEW IF EXISTS %s CASCADE", names.Public)); err != nil {
		return fmt.Errorf("dropping view: %w", err)
	}
	return nil
}

// createViewAndRules (re)creates the presentation view and its three
// INSTEAD rules from the current column list.
func createViewAndRules(ctx context.Context, tx db.DB, table string, pk string, nonPKColumns []string) error {
	names := namesFor(table)

	t := templates.Table{
		PublicView:   names.Public,
		CurrentTable: names.Current,
		HistoryTable: names.History,
		Columns:      nonPKColumns,
		PrimaryKey:   pk,
	}

	viewSQL, err := templates.BuildView(t)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, viewSQL); err != nil {
		return fmt.Errorf("recreating view: %w", err)
	}

	return createRules(ctx, tx, t)
}

// rebuildViewAndRules drops the presentation view and recreates both it
// and its three rules from the current column list. Any operation that
// changes current.<name>'s column set needs this, because the rule
// bodies enumerate columns by name (spec §4.5: "rule bodies embed the
// column list, so any column change invalidates them").
func rebuildViewAndRules(ctx context.Context, tx db.DB, table string, pk string, nonPKColumns []string) error {
	if err := dropView(ctx, tx, table); err != nil {
		return err
	}
	return createViewAndRules(ctx, tx, table, pk, nonPKColumns)
}
