// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"context"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

// Introspector answers metadata questions about a table the way a
// generic mapper's stock introspection would, redirected to the
// current schema for temporal tables (spec §4.5: "the driver's stock
// introspection queries use current_schema()").
type Introspector struct {
	DB     db.DB
	Cache  *temporalcache.Cache
	Router *schemarouter.Router
}

// ColumnDefinitions reports the non-system column names of table, in
// ordinal position order. For a temporal table this excludes hid,
// valid_from, valid_to, and recorded_at because it is scoped to
// current.<name>, which never carries those columns (spec scenario 5).
func (in *Introspector) ColumnDefinitions(ctx context.Context, table string) ([]string, error) {
	var cols []string
	err := in.withIntrospectionSchema(ctx, table, func(ctx context.Context) error {
		rows, err := in.DB.QueryContext(ctx, `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position`, table)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			cols = append(cols, c)
		}
		return rows.Err()
	})
	return cols, err
}

// PrimaryKey reports the ordered primary-key column names of table.
func (in *Introspector) PrimaryKey(ctx context.Context, table string) ([]string, error) {
	var cols []string
	err := in.withIntrospectionSchema(ctx, table, func(ctx context.Context) error {
		rows, err := in.DB.QueryContext(ctx, `
			SELECT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = current_schema()
				AND tc.table_name = $1
			ORDER BY kcu.ordinal_position`, table)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			cols = append(cols, c)
		}
		return rows.Err()
	})
	return cols, err
}

// Indexes reports the names of indexes defined on table.
func (in *Introspector) Indexes(ctx context.Context, table string) ([]string, error) {
	var names []string
	err := in.withIntrospectionSchema(ctx, table, func(ctx context.Context) error {
		rows, err := in.DB.QueryContext(ctx, `
			SELECT indexname
			FROM pg_indexes
			WHERE schemaname = current_schema() AND tablename = $1`, table)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n string
			if err := rows.Scan(&n); err != nil {
				return err
			}
			names = append(names, n)
		}
		return rows.Err()
	})
	return names, err
}

// withIntrospectionSchema runs body with search_path pinned to
// current (temporal tables) or public (non-temporal), without nesting,
// since introspection queries rely on current_schema() resolving to
// exactly one schema.
func (in *Introspector) withIntrospectionSchema(ctx context.Context, table string, body func(ctx context.Context) error) error {
	temporal, err := in.Cache.IsTemporal(ctx, table)
	if err != nil {
		return err
	}

	schemaName := "public"
	if temporal {
		schemaName = "current"
	}

	return in.Router.OnSchema(ctx, schemaName, false, body)
}
