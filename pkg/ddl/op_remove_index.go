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

var _ Operation = (*OpRemoveIndex)(nil)

// OpRemoveIndex is remove_index(table, name): drop the index from both
// schemas. The history-side index was created under historyIndexName(name)
// by add_index, so that is what gets dropped there.
type OpRemoveIndex struct {
	Table string `json:"table"`
	Name  string `json:"name"`
}

func (o *OpRemoveIndex) OpName() string { return fmt.Sprintf("remove_index %q on %q", o.Name, o.Table) }

func (o *OpRemoveIndex) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	if _, ok := t.Indexes[o.Name]; !ok {
		return IndexDoesNotExistError{Name: o.Name}
	}
	t.RemoveIndex(o.Name)
	return nil
}

func (o *OpRemoveIndex) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	target := ident.Quote(o.Name)
	if temporal {
		target = ident.QuoteQualified("current", o.Name)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s", target)); err != nil {
		return fmt.Errorf("dropping index on current table: %w", err)
	}

	if !temporal {
		return nil
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s", ident.QuoteQualified("history", historyIndexName(o.Name)))); err != nil {
		return fmt.Errorf("dropping index on history table: %w", err)
	}
	return nil
}
