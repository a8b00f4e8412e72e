// SPDX-License-Identifier: Apache-2.0

package timemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

// historyAtBody is the "history at T" CTE body shared by AsOf and the
// transitive join rewrite (spec.md §4.7, step 2 and §4.7a).
func historyAtBody(table string, t time.Time) string {
	tLit := ident.TimestampLiteral(t)
	return fmt.Sprintf(
		"SELECT %s.*, %s AS as_of_time FROM %s WHERE %s >= valid_from AND %s < valid_to",
		table, tLit, temporalcache.QuotedHistoryTable(table), tLit, tLit,
	)
}

// AsOf rewrites rel to read table as of instant t (spec.md §4.7,
// `as_of(T, base_scope)`):
//
//  1. normalize t to UTC (the caller is expected to have already parsed
//     it through pkg/timeutil);
//  2. attach the "history at T" CTE for table;
//  3. reattach baseWhere/baseOrder, the caller's own scope, since the
//     live entity's default scopes may reference the public view whose
//     rewrite this CTE is replacing;
//  4. run the transitive join rewrite (§4.7a) over every join source the
//     relation reports, adding one more CTE per temporal join target.
//
// AsOf does not itself execute anything; rel accumulates the rewrite and
// the caller is responsible for compiling/running it.
func AsOf(ctx context.Context, rel RelationBuilder, table string, t time.Time, baseWhere, baseOrder string, cache *temporalcache.Cache) error {
	t = t.UTC()
	rel.CTE(table, historyAtBody(table, t))

	if baseWhere != "" {
		rel.Where(baseWhere)
	}
	if baseOrder != "" {
		rel.OrderBy(baseOrder)
	}

	return rewriteJoins(ctx, rel, t, cache)
}

// rewriteJoins implements §4.7a: a single pass over rel.Joins(), adding a
// CTE for each joined logical name the temporal cache reports as
// temporal. CTE names are unique per logical table, so a join source seen
// more than once is only rewritten once.
func rewriteJoins(ctx context.Context, rel RelationBuilder, t time.Time, cache *temporalcache.Cache) error {
	seen := map[string]bool{}

	for _, j := range rel.Joins() {
		if seen[j.Table] {
			continue
		}
		seen[j.Table] = true

		temporal, err := cache.IsTemporal(ctx, j.Table)
		if err != nil {
			return err
		}
		if !temporal {
			continue
		}

		rel.CTE(j.Table, historyAtBody(j.Table, t))
	}

	return nil
}
