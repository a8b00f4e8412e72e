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

var _ Operation = (*OpChangeColumnNull)(nil)

// OpChangeColumnNull is change_column_null(table, name, nullable). Like
// change_column_default, it applies against current.<name> only.
type OpChangeColumnNull struct {
	Table    string `json:"table"`
	Name     string `json:"name"`
	Nullable bool   `json:"nullable"`
}

func (o *OpChangeColumnNull) OpName() string {
	return fmt.Sprintf("change_column_null %q on %q", o.Name, o.Table)
}

func (o *OpChangeColumnNull) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	c := t.GetColumn(o.Name)
	if c == nil {
		return ColumnDoesNotExistError{Table: o.Table, Name: o.Name}
	}
	c.Nullable = o.Nullable
	return nil
}

func (o *OpChangeColumnNull) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	target := ident.Quote(o.Table)
	if temporal {
		target = namesFor(o.Table).Current
	}

	clause := "SET NOT NULL"
	if o.Nullable {
		clause = "DROP NOT NULL"
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s",
		target, ident.Quote(o.Name), clause))
	return err
}
