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

var _ Operation = (*OpChangeColumn)(nil)

// OpChangeColumn is change_column(table, name, type): a destructive
// change to a temporal table's column (spec §4.5) because a type change
// can invalidate the view and rules before PostgreSQL has a chance to
// check them against the new type, so the view is dropped first, then
// the underlying column is altered, then the view and rules are rebuilt.
type OpChangeColumn struct {
	Table string `json:"table"`
	Name  string `json:"name"`
	Type  string `json:"type"`

	pk           string
	nonPKColumns []string
}

func (o *OpChangeColumn) OpName() string {
	return fmt.Sprintf("change_column %q on %q", o.Name, o.Table)
}

func (o *OpChangeColumn) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	c := t.GetColumn(o.Name)
	if c == nil {
		return ColumnDoesNotExistError{Table: o.Table, Name: o.Name}
	}
	c.Type = o.Type

	if len(t.PrimaryKey) > 0 {
		o.pk = t.PrimaryKey[0]
	}
	o.nonPKColumns = nonPrimaryKeyColumnNames(t)

	return nil
}

func (o *OpChangeColumn) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
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
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s",
		target, ident.Quote(o.Name), o.Type)); err != nil {
		return fmt.Errorf("changing column type: %w", err)
	}

	if !temporal {
		return nil
	}

	return createViewAndRules(ctx, tx, o.Table, o.pk, o.nonPKColumns)
}
