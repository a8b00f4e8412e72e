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

var _ Operation = (*OpRemoveColumn)(nil)

// OpRemoveColumn is remove_column(table, name): destructive like
// change_column — the view is dropped before the underlying column goes
// away, then rebuilt with the remaining columns.
type OpRemoveColumn struct {
	Table string `json:"table"`
	Name  string `json:"name"`

	pk           string
	nonPKColumns []string
}

func (o *OpRemoveColumn) OpName() string {
	return fmt.Sprintf("remove_column %q on %q", o.Name, o.Table)
}

func (o *OpRemoveColumn) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	if t.GetColumn(o.Name) == nil {
		return ColumnDoesNotExistError{Table: o.Table, Name: o.Name}
	}
	t.RemoveColumn(o.Name)

	if len(t.PrimaryKey) > 0 {
		o.pk = t.PrimaryKey[0]
	}
	o.nonPKColumns = nonPrimaryKeyColumnNames(t)

	return nil
}

func (o *OpRemoveColumn) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	names := namesFor(o.Table)

	if temporal {
		if err := dropView(ctx, tx, o.Table); err != nil {
			return err
		}
	}

	target := ident.Quote(o.Table)
	if temporal {
		target = names.Current
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s DROP COLUMN IF EXISTS %s",
		target, ident.Quote(o.Name))); err != nil {
		return fmt.Errorf("dropping column: %w", err)
	}

	if !temporal {
		return nil
	}

	return createViewAndRules(ctx, tx, o.Table, o.pk, o.nonPKColumns)
}
