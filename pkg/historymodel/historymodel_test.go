// SPDX-License-Identifier: Apache-2.0

package historymodel_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/bitemporaltest"
	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/historymodel"
)

func TestMain(m *testing.M) {
	bitemporaltest.SharedTestMain(m)
}

type widget struct {
	ID    int64
	Name  string
	Price int64
}

func scanHistoryWidget(rows *sql.Rows) (historymodel.Row[widget], error) {
	var r historymodel.Row[widget]
	if err := rows.Scan(&r.HID, &r.RID, &r.ValidFrom, &r.ValidTo, &r.RecordedAt, &r.AsOfTime,
		&r.Value.ID, &r.Value.Name, &r.Value.Price); err != nil {
		return historymodel.Row[widget]{}, err
	}
	return r, nil
}

func scanCurrentWidget(rows *sql.Rows) (widget, error) {
	var w widget
	err := rows.Scan(&w.ID, &w.Name, &w.Price)
	return w, err
}

// setupWidgets creates a minimal current/history pair by hand, bypassing
// the DDL compiler, since this package only needs a concrete table shape
// to exercise its query methods against.
func setupWidgets(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()

	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS current`,
		`CREATE SCHEMA IF NOT EXISTS history`,
		`CREATE TABLE current.widgets (id bigint PRIMARY KEY, name text NOT NULL, price bigint NOT NULL)`,
		`CREATE TABLE history.widgets (
			hid BIGSERIAL PRIMARY KEY,
			valid_from timestamptz NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
			valid_to timestamptz NOT NULL DEFAULT '9999-12-31',
			recorded_at timestamptz NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
		) INHERITS (current.widgets)`,
	}
	for _, s := range stmts {
		_, err := conn.ExecContext(ctx, s)
		require.NoError(t, err)
	}

	_, err := conn.ExecContext(ctx, `INSERT INTO current.widgets (id, name, price) VALUES (1, 'gadget-v3', 300)`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `
		INSERT INTO history.widgets (id, name, price, valid_from, valid_to) VALUES
			(1, 'gadget-v1', 100, '2024-01-01', '2024-06-01'),
			(1, 'gadget-v2', 200, '2024-06-01', '2024-09-01'),
			(1, 'gadget-v3', 300, '2024-09-01', '9999-12-31')`)
	require.NoError(t, err)
}

func TestHistoryViewChain(t *testing.T) {
	t.Parallel()

	bitemporaltest.WithConnectionToContainer(t, func(conn *sql.DB, _ string) {
		setupWidgets(t, conn)

		view := &historymodel.HistoryView[widget]{
			DB:         &db.RDB{DB: conn},
			Table:      "widgets",
			PrimaryKey: "id",
			Scan:       scanHistoryWidget,
		}

		first, ok, err := view.First(context.Background(), 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "gadget-v1", first.Value.Name)
		assert.True(t, first.ValidFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

		last, ok, err := view.Last(context.Background(), 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "gadget-v3", last.Value.Name)

		succ, ok, err := view.Succ(context.Background(), first)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "gadget-v2", succ.Value.Name)
		assert.Equal(t, int64(1), succ.RID)

		pred, ok, err := view.Pred(context.Background(), last)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "gadget-v2", pred.Value.Name)

		_, ok, err = view.Pred(context.Background(), first)
		require.NoError(t, err)
		assert.False(t, ok, "the oldest version has no predecessor")

		current, ok, err := view.Record(context.Background(), 1, scanCurrentWidget)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "gadget-v3", current.Name)

		err = view.Destroy(context.Background(), last)
		assert.ErrorAs(t, err, &historymodel.ReadOnlyRecordError{})
	})
}
