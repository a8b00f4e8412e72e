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

var _ Operation = (*OpChangeColumnDefault)(nil)

// OpChangeColumnDefault is change_column_default(table, name, default). It
// applies against current.<name> only: the view and rules never mention
// a column's default, so they are unaffected.
type OpChangeColumnDefault struct {
	Table   string  `json:"table"`
	Name    string  `json:"name"`
	Default *string `json:"default"`
}

func (o *OpChangeColumnDefault) OpName() string {
	return fmt.Sprintf("change_column_default %q on %q", o.Name, o.Table)
}

func (o *OpChangeColumnDefault) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	c := t.GetColumn(o.Name)
	if c == nil {
		return ColumnDoesNotExistError{Table: o.Table, Name: o.Name}
	}
	c.Default = o.Default
	return nil
}

func (o *OpChangeColumnDefault) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	target := ident.Quote(o.Table)
	if temporal {
		target = namesFor(o.Table).Current
	}

	clause := "DROP DEFAULT"
	if o.Default != nil {
		clause = fmt.Sprintf("SET DEFAULT %s", ident.Literal(*o.Default))
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s",
		target, ident.Quote(o.Name), clause))
	return err
}
