// SPDX-License-Identifier: Apache-2.0

// Package amend implements the Amendment Utility (C9): a direct,
// unvalidated rewrite of one history row's validity period, for data
// migration use (spec.md §4.9). It intentionally does not re-check the
// exclusion constraint beyond what PostgreSQL already enforces: a caller
// that amends into an overlap gets the database's own GiST-exclusion
// error, not a friendlier one from this package.
package amend

import (
	"context"
	"fmt"
	"time"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

// NonUTCTimestampError is returned when from or to is not marked UTC
// (spec.md §4.9, §7's NonUtcTimestamp error kind).
type NonUTCTimestampError struct {
	Value time.Time
}

func (e NonUTCTimestampError) Error() string {
	return fmt.Sprintf("amend_period requires a UTC timestamp, got %s (location %s)", e.Value, e.Value.Location())
}

// Period rewrites the [valid_from, valid_to) of the history row hid in
// table to [from, to), per spec.md §4.9's `amend_period!`.
func Period(ctx context.Context, conn db.DB, table string, hid int64, from, to time.Time) error {
	if !timeutil.IsUTC(from) {
		return NonUTCTimestampError{Value: from}
	}
	if !timeutil.IsUTC(to) {
		return NonUTCTimestampError{Value: to}
	}

	q := fmt.Sprintf(
		"UPDATE %s SET valid_from = %s, valid_to = %s WHERE hid = $1",
		temporalcache.QuotedHistoryTable(table), ident.TimestampLiteral(from), ident.TimestampLiteral(to),
	)

	_, err := conn.ExecContext(ctx, q, hid)
	return err
}
