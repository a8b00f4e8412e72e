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

var _ Operation = (*OpDropTable)(nil)

// OpDropTable is drop_table(name): DROP TABLE current.<name> CASCADE
// removes the inherited history table, the view, and the rules in one
// statement, since they are all downstream of current.<name> in
// PostgreSQL's dependency graph.
type OpDropTable struct {
	Name string `json:"name"`
}

func (o *OpDropTable) OpName() string { return fmt.Sprintf("drop_table %q", o.Name) }

func (o *OpDropTable) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Name)
	if t == nil {
		return TableDoesNotExistError{Name: o.Name}
	}
	s.RemoveTable(o.Name)
	return nil
}

func (o *OpDropTable) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Name)
	if err != nil {
		return err
	}

	if !temporal {
		_, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", ident.Quote(o.Name)))
		return err
	}

	names := namesFor(o.Name)
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %s CASCADE", names.Current)); err != nil {
		return fmt.Errorf("dropping current table: %w", err)
	}

	cache.Delete(o.Name)
	return nil
}
