// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/schema"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

var _ Operation = (*OpAddIndex)(nil)

// OpAddIndex is add_index(table, name, columns, unique). It applies
// against current.<name> as specified, then against history.<name> with
// any UNIQUE flag stripped: uniqueness cannot hold across multiple
// versions of the same logical row.
type OpAddIndex struct {
	Table   string   `json:"table"`
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

func (o *OpAddIndex) OpName() string { return fmt.Sprintf("add_index %q on %q", o.Name, o.Table) }

func (o *OpAddIndex) Validate(s *schema.Schema) error {
	t := s.GetTable(o.Table)
	if t == nil {
		return TableDoesNotExistError{Name: o.Table}
	}
	if _, ok := t.Indexes[o.Name]; ok {
		return IndexAlreadyExistsError{Name: o.Name}
	}
	t.AddIndex(o.Name, &schema.Index{Name: o.Name, Columns: o.Columns, Unique: o.Unique})
	return nil
}

func (o *OpAddIndex) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.Table)
	if err != nil {
		return err
	}

	names := namesFor(o.Table)
	target := ident.Quote(o.Table)
	if temporal {
		target = names.Current
	}

	if _, err := tx.ExecContext(ctx, indexSQL(o.Name, target, o.Columns, o.Unique)); err != nil {
		return fmt.Errorf("creating index on current table: %w", err)
	}

	if !temporal {
		return nil
	}

	historyIdx := historyIndexName(o.Name)
	if _, err := tx.ExecContext(ctx, indexSQL(historyIdx, names.History, o.Columns, false)); err != nil {
		return fmt.Errorf("creating index on history table: %w", err)
	}

	return nil
}

// historyIndexName derives the deterministic name of a history-schema
// index from its current-schema counterpart, so remove_index can find it
// again without having to persist a separate mapping.
func historyIndexName(name string) string {
	const suffix = "_hist"
	if len(name)+len(suffix) > MaxNameLength {
		name = name[:MaxNameLength-len(suffix)]
	}
	return name + suffix
}

func indexSQL(name, table string, columns []string, unique bool) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = ident.Quote(c)
	}

	keyword := "INDEX"
	if unique {
		keyword = "UNIQUE INDEX"
	}

	return fmt.Sprintf("CREATE %s %s ON %s (%s)", keyword, ident.Quote(name), table, strings.Join(quoted, ", "))
}
