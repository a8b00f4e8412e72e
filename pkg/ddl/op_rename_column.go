// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"context"
	"fmt"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/schema"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

var _ Operation = (*OpRenameColumn)(nil)

// OpRenameColumn is rename_column(table, from, to). Renaming propagates to
// history.<name> through INHERITS; the view and rules are rebuilt
// afterwards for the same reason as add_column.
type OpRenameColumn struct {
	Table string `json:"table"`
	From  string `json:"from"`
	To    string `json:"to"`

	pk           string
	nonPKColumns []string
}

func (o *OpRenameColumn) OpName() string {
	return fmt.Sprintf("rename_column %q to %q on %q", o.From, o.To, o.Table)
}

func (o *OpRenameColumn) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	if t.GetColumn(o.From) == nil {
		return ColumnDoesNotExistError{Table: o.Table, Name: o.From}
	}
	if t.GetColumn(o.To) != nil {
		return ColumnAlreadyExistsError{Table: o.Table, Name: o.To}
	}

	t.RenameColumn(o.From, o.To)
	for i, pk := range t.PrimaryKey {
		if pk == o.From {
			t.PrimaryKey[i] = o.To
		}
	}

	if len(t.PrimaryKey) > 0 {
		o.pk = t.PrimaryKey[0]
	}
	o.nonPKColumns = nonPrimaryKeyColumnNames(t)

	return nil
}

func (o *OpRenameColumn) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	target := ident.Quote(o.Table)
	if temporal {
		target = namesFor(o.Table).Current
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		target, ident.Quote(o.From), ident.Quote(o.To))); err != nil {
		return fmt.Errorf("renaming column: %w", err)
	}

	if !temporal {
		return nil
	}

	return rebuildViewAndRules(ctx, tx, o.Table, o.pk, o.nonPKColumns)
}
