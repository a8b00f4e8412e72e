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

var _ Operation = (*OpAddColumn)(nil)

// OpAddColumn is add_column(table, column). A plain table is altered in
// place. For a temporal table it applies against current.<name> only;
// PostgreSQL's INHERITS propagates the new column to history.<name>
// automatically. The view and its three rules are rebuilt
// afterwards because their bodies enumerate the column list.
type OpAddColumn struct {
	Table  string `json:"table"`
	Column Column `json:"column"`

	pk          string
	nonPKColumns []string
}

func (o *OpAddColumn) OpName() string {
	return fmt.Sprintf("add_column %q on %q", o.Column.Name, o.Table)
}

func (o *OpAddColumn) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	if t.GetColumn(o.Column.Name) != nil {
		return ColumnAlreadyExistsError{Table: o.Table, Name: o.Column.Name}
	}

	t.AddColumn(o.Column.Name, &schema.Column{
		Name:     o.Column.Name,
		Type:     o.Column.Type,
		Nullable: o.Column.Nullable,
		Unique:   o.Column.Unique,
		Default:  o.Column.Default,
	})

	if len(t.PrimaryKey) > 0 {
		o.pk = t.PrimaryKey[0]
	}
	o.nonPKColumns = nonPrimaryKeyColumnNames(t)

	return nil
}

func (o *OpAddColumn) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	target := ident.Quote(o.Table)
	if temporal {
		target = namesFor(o.Table).Current
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s",
		target, o.Column.ToSQL())); err != nil {
		return fmt.Errorf("adding column: %w", err)
	}

	if !temporal {
		return nil
	}

	return rebuildViewAndRules(ctx, tx, o.Table, o.pk, o.nonPKColumns)
}

func nonPrimaryKeyColumnNames(t *schema.Table) []string {
	pkSet := make(map[string]bool, len(t.PrimaryKey))
	for _, pk := range t.PrimaryKey {
		pkSet[pk] = true
	}
	names := make([]string, 0, len(t.Columns))
	for _, name := range t.ColumnNames() {
		if !pkSet[name] {
			names = append(names, name)
		}
	}
	return names
}
