// SPDX-License-Identifier: Apache-2.0

// Package timestamps implements the Timestamp Enumerator (C8): for an
// entity, optionally scoped to one record, return the sorted distinct set
// of change instants across the entity and its temporal associations
// (spec.md §4.8).
package timestamps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

// Association describes a belongs_to/has_one link from the enumerated
// entity to another entity, for step 1 of the algorithm ("collect the
// associations ... of kind belongs_to or has_one, and whose target is
// itself temporal"). Polymorphic associations and has_many/has_and_
// belongs_to_many are out of scope (spec.md §4.8 step 1), so callers are
// expected to have already filtered to this shape.
type Association struct {
	// Table is the associated entity's logical table name.
	Table string
	// ForeignKey is the column on the enumerated entity's table holding
	// the associated row's id (belongs_to), or the associated table's
	// column holding this entity's id (has_one), distinguished by
	// OwnedByParent.
	ForeignKey string
	// OwnedByParent is true for has_one (the foreign key lives on the
	// associated table), false for belongs_to (it lives on this table).
	OwnedByParent bool
}

// Enumerate runs the algorithm of spec.md §4.8 for `table`, optionally
// scoped to one record's id, returning the sorted distinct set of UTC
// change instants. It executes within the `history` schema (or `public`
// if table is not itself temporal) via the Schema Router, since the
// associations' history companions are only visible there.
func Enumerate(ctx context.Context, conn db.DB, router *schemarouter.Router, cache *temporalcache.Cache, table string, associations []Association, recordID any) ([]time.Time, error) {
	temporal, err := cache.IsTemporal(ctx, table)
	if err != nil {
		return nil, err
	}

	var temporalAssocs []Association
	for _, a := range associations {
		assocTemporal, err := cache.IsTemporal(ctx, a.Table)
		if err != nil {
			return nil, err
		}
		if assocTemporal {
			temporalAssocs = append(temporalAssocs, a)
		}
	}

	q, args := buildQuery(table, temporal, temporalAssocs, recordID)

	schemaName := "history"
	if !temporal {
		schemaName = "public"
	}

	var out []time.Time
	err = router.OnSchema(ctx, schemaName, false, func(ctx context.Context) error {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				return err
			}
			t, err := timeutil.Parse(raw)
			if err != nil {
				// spec.md §5's error-propagation policy: a timestamp-parse
				// error in C8 filters the offending value out rather than
				// aborting the whole enumeration.
				continue
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// buildQuery implements steps 2-5 of spec.md §4.8: a LEFT OUTER join of
// the entity and its temporal associations, UNNESTed and DISTINCTed over
// every source's valid_from/valid_to, optionally scoped by id and lower-
// bounded by the record's first history row, filtered to non-null,
// strictly-past instants, ordered ascending.
func buildQuery(table string, tableIsTemporal bool, assocs []Association, recordID any) (string, []any) {
	from := fmt.Sprintf("%s AS %s", ident.QuoteQualified(schemaOf(tableIsTemporal), table), ident.Quote(table))
	instants := []string{
		fmt.Sprintf("%s.valid_from", ident.Quote(table)),
		fmt.Sprintf("%s.valid_to", ident.Quote(table)),
	}
	var joins []string

	for _, a := range assocs {
		alias := ident.Quote(a.Table)
		joins = append(joins, fmt.Sprintf("LEFT OUTER JOIN %s AS %s ON %s",
			ident.QuoteQualified("history", a.Table), alias, joinCondition(table, a)))
		instants = append(instants, fmt.Sprintf("%s.valid_from", alias), fmt.Sprintf("%s.valid_to", alias))
	}

	unnest := fmt.Sprintf("UNNEST(ARRAY[%s]) AS ts", strings.Join(instants, ", "))

	var scope []string
	var args []any
	if recordID != nil {
		scope = append(scope, fmt.Sprintf("%s.%s = $1", ident.Quote(table), ident.Quote("id")))
		args = append(args, recordID)
	}

	inner := fmt.Sprintf("SELECT DISTINCT %s FROM %s", unnest, from)
	for _, j := range joins {
		inner += " " + j
	}
	if len(scope) > 0 {
		inner += " WHERE " + strings.Join(scope, " AND ")
	}

	// ts is a set-returning-function alias, not visible to a WHERE clause
	// at the same query level, so the null/past filter wraps the
	// generating query as an outer subquery.
	outerWhere := "ts IS NOT NULL AND ts < now()"
	if recordID != nil {
		// lower-bound by the record's own first history row, per
		// spec.md §4.8 step 4. Reuses $1: the inner query's id scope and
		// this bound both test the same recordID value.
		outerWhere += fmt.Sprintf(" AND ts >= (SELECT MIN(valid_from) FROM %s WHERE %s = $1)",
			ident.QuoteQualified("history", table), ident.Quote("id"))
	}

	// Each instant is rendered in timeutil's wire format so Enumerate can
	// parse it back with timeutil.Parse.
	q := fmt.Sprintf("SELECT to_char(ts, 'YYYY-MM-DD HH24:MI:SS.US') FROM (%s) enumerated WHERE %s ORDER BY ts ASC", inner, outerWhere)

	return q, args
}

func schemaOf(temporal bool) string {
	if temporal {
		return "history"
	}
	return "public"
}

func joinCondition(table string, a Association) string {
	if a.OwnedByParent {
		return fmt.Sprintf("%s.%s = %s.id", ident.Quote(a.Table), ident.Quote(a.ForeignKey), ident.Quote(table))
	}
	return fmt.Sprintf("%s.%s = %s.id", ident.Quote(table), ident.Quote(a.ForeignKey), ident.Quote(a.Table))
}
