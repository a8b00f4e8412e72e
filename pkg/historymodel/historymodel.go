// SPDX-License-Identifier: Apache-2.0

// Package historymodel is the History Model Factory (C6). Where the
// original system synthesizes a companion class per temporal entity at
// runtime, this models the same idea as a parametric HistoryView[M] value
// (spec §9, "Runtime class synthesis") — a small, data-only behavior
// table (pred/succ/first/last/record) holding a reference to the parent
// entity's table/column metadata, with no class mutation required.
package historymodel

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
)

// Row is one version of a logical record (spec §3, HistoryRow).
//
// Identity for this companion is hid, the history row's own surrogate
// key; rid is a distinct accessor for the inherited logical id, kept
// separate so that upper layers that key on "primary key of record" see
// hid, per spec §3 Invariant 6.
type Row[M any] struct {
	HID        int64
	RID        int64
	ValidFrom  time.Time
	ValidTo    time.Time
	RecordedAt time.Time
	// AsOfTime is the timestamp context attached to the row: the time it
	// was read at, or LEAST(valid_to, now()) when read without one.
	AsOfTime time.Time
	Value    M
}

// ReadOnlyRecordError is returned by Destroy: history rows are never
// deleted directly (spec §4.6, Invariant 4).
type ReadOnlyRecordError struct {
	Table string
}

func (e ReadOnlyRecordError) Error() string {
	return fmt.Sprintf("history rows of %q are read-only", e.Table)
}

// ScanFunc decodes one *sql.Rows positioned at a result row of the form
// `SELECT hid, <pk> AS rid, valid_from, valid_to, recorded_at,
// LEAST(valid_to, now()) AS as_of_time, <business columns...>` into a
// Row[M]. The caller owns the scan because M's shape is opaque to this
// package; historymodel only fixes the six leading system columns.
type ScanFunc[M any] func(rows *sql.Rows) (Row[M], error)

// HistoryView is the companion over history.<Table> for one logical
// entity, parameterized by the business-value type M.
type HistoryView[M any] struct {
	DB         db.DB
	Table      string
	PrimaryKey string
	Scan       ScanFunc[M]
}

func (h *HistoryView[M]) historyTable() string {
	return ident.QuoteQualified("history", h.Table)
}

func (h *HistoryView[M]) currentTable() string {
	return ident.QuoteQualified("current", h.Table)
}

// systemColumns is the fixed leading projection every query in this
// package emits, ahead of `h.Table`'s business columns.
func (h *HistoryView[M]) systemColumns() string {
	return fmt.Sprintf("hid, %s AS rid, valid_from, valid_to, recorded_at, LEAST(valid_to, now()) AS as_of_time",
		ident.Quote(h.PrimaryKey))
}

func (h *HistoryView[M]) queryOne(ctx context.Context, where string, args ...any) (Row[M], bool, error) {
	q := fmt.Sprintf("SELECT %s, * FROM %s WHERE %s", h.systemColumns(), h.historyTable(), where)

	rows, err := h.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return Row[M]{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Row[M]{}, false, rows.Err()
	}
	r, err := h.Scan(rows)
	if err != nil {
		return Row[M]{}, false, err
	}
	return r, true, nil
}

// Pred returns the version immediately preceding row, joined on
// valid_to = row.ValidFrom. Returns (zero, false, nil) if row is the
// first version (nothing closes exactly when it opens).
func (h *HistoryView[M]) Pred(ctx context.Context, row Row[M]) (Row[M], bool, error) {
	return h.queryOne(ctx, fmt.Sprintf("%s = $1 AND valid_to = $2", ident.Quote(h.PrimaryKey)), row.RID, row.ValidFrom)
}

// Succ returns the version immediately following row, joined on
// valid_from = row.ValidTo. Returns (zero, false, nil) if row is the
// currently open version.
func (h *HistoryView[M]) Succ(ctx context.Context, row Row[M]) (Row[M], bool, error) {
	return h.queryOne(ctx, fmt.Sprintf("%s = $1 AND valid_from = $2", ident.Quote(h.PrimaryKey)), row.RID, row.ValidTo)
}

// First returns the oldest version of the logical record rid.
func (h *HistoryView[M]) First(ctx context.Context, rid int64) (Row[M], bool, error) {
	return h.bound(ctx, rid, "valid_from ASC")
}

// Last returns the newest version of the logical record rid.
func (h *HistoryView[M]) Last(ctx context.Context, rid int64) (Row[M], bool, error) {
	return h.bound(ctx, rid, "valid_from DESC")
}

func (h *HistoryView[M]) bound(ctx context.Context, rid int64, order string) (Row[M], bool, error) {
	q := fmt.Sprintf("SELECT %s, * FROM %s WHERE %s = $1 ORDER BY %s LIMIT 1",
		h.systemColumns(), h.historyTable(), ident.Quote(h.PrimaryKey), order)

	rows, err := h.DB.QueryContext(ctx, q, rid)
	if err != nil {
		return Row[M]{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Row[M]{}, false, rows.Err()
	}
	r, err := h.Scan(rows)
	return r, err == nil, err
}

// Record returns the current (live) row for rid from current.<Table>.
// It returns a bare M, not a Row[M]: the current table carries none of
// the system columns.
func (h *HistoryView[M]) Record(ctx context.Context, rid int64, scan func(*sql.Rows) (M, error)) (M, bool, error) {
	var zero M
	q := fmt.Sprintf("SELECT * FROM ONLY %s WHERE %s = $1", h.currentTable(), ident.Quote(h.PrimaryKey))
	rows, err := h.DB.QueryContext(ctx, q, rid)
	if err != nil {
		return zero, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return zero, false, rows.Err()
	}
	v, err := scan(rows)
	return v, err == nil, err
}

// Destroy always fails: history rows are read-only from the application
// path (spec §4.6).
func (h *HistoryView[M]) Destroy(context.Context, Row[M]) error {
	return ReadOnlyRecordError{Table: h.Table}
}
