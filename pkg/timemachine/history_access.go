// SPDX-License-Identifier: Apache-2.0

package timemachine

import (
	"fmt"

	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

// asOfTimeProjection is the computed per-row `as_of_time` column non-as-of
// history queries add, unless the caller's own select list is an
// aggregate (spec.md §4.7b).
const asOfTimeProjection = "LEAST(valid_to, now()) AS as_of_time"

const historyOrder = "recorded_at, hid"

// Of builds the query for the complete history of one logical row
// (spec.md §4.7b, `of(object)`): every version of the record identified
// by pkColumn = pkValue, ordered by (recorded_at, hid), with the
// as_of_time projection — unless selectList is itself an aggregate, in
// which case both the implicit ordering and the as_of_time projection are
// suppressed.
func Of(table, pkColumn string, pkValue any, selectList string) (string, []any) {
	projection := selectList
	if !HasAggregate(selectList) {
		projection = fmt.Sprintf("%s, %s", selectList, asOfTimeProjection)
	}

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		projection, temporalcache.QuotedHistoryTable(table), ident.Quote(pkColumn))

	if !HasAggregate(selectList) {
		q += " ORDER BY " + historyOrder
	}

	return q, []any{pkValue}
}

// All builds the query for the entire history of table, read-only,
// ordered by (recorded_at, hid), with the same aggregate-suppression rule
// as Of.
func All(table, selectList string) string {
	projection := selectList
	if !HasAggregate(selectList) {
		projection = fmt.Sprintf("%s, %s", selectList, asOfTimeProjection)
	}

	q := fmt.Sprintf("SELECT %s FROM %s", projection, temporalcache.QuotedHistoryTable(table))

	if !HasAggregate(selectList) {
		q += " ORDER BY " + historyOrder
	}

	return q
}
