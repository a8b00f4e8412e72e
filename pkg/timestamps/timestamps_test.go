// SPDX-License-Identifier: Apache-2.0

package timestamps_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/bitemporaltest"
	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
	"github.com/bitempodb/bitempodb/pkg/timestamps"
)

func TestMain(m *testing.M) {
	bitemporaltest.SharedTestMain(m)
}

func setupOrdersAndCustomers(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()

	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS current`,
		`CREATE SCHEMA IF NOT EXISTS history`,
		`CREATE TABLE current.customers (id bigint PRIMARY KEY, name text NOT NULL)`,
		`CREATE TABLE history.customers (
			hid BIGSERIAL PRIMARY KEY,
			valid_from timestamptz NOT NULL,
			valid_to timestamptz NOT NULL,
			recorded_at timestamptz NOT NULL DEFAULT now()
		) INHERITS (current.customers)`,
		`CREATE TABLE current.orders (id bigint PRIMARY KEY, customer_id bigint NOT NULL, status text NOT NULL)`,
		`CREATE TABLE history.orders (
			hid BIGSERIAL PRIMARY KEY,
			valid_from timestamptz NOT NULL,
			valid_to timestamptz NOT NULL,
			recorded_at timestamptz NOT NULL DEFAULT now()
		) INHERITS (current.orders)`,
	}
	for _, s := range stmts {
		_, err := conn.ExecContext(ctx, s)
		require.NoError(t, err)
	}

	_, err := conn.ExecContext(ctx, `
		INSERT INTO history.customers (id, name, valid_from, valid_to) VALUES
			(1, 'acme', '2024-01-01', '2024-06-01'),
			(1, 'acme-2', '2024-06-01', '9999-12-31')`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `
		INSERT INTO history.orders (id, customer_id, status, valid_from, valid_to) VALUES
			(10, 1, 'pending', '2024-02-01', '2024-03-01'),
			(10, 1, 'shipped', '2024-03-01', '9999-12-31')`)
	require.NoError(t, err)
}

func TestEnumerateMergesAssociationTimestamps(t *testing.T) {
	t.Parallel()

	bitemporaltest.WithConnectionToContainer(t, func(conn *sql.DB, _ string) {
		setupOrdersAndCustomers(t, conn)

		ctx := context.Background()
		sqlConn, err := conn.Conn(ctx)
		require.NoError(t, err)
		defer sqlConn.Close()

		router := schemarouter.New(sqlConn)
		cache := temporalcache.New(&temporalcache.DBProber{Conn: conn})

		assocs := []timestamps.Association{
			{Table: "customers", ForeignKey: "customer_id", OwnedByParent: false},
		}

		instants, err := timestamps.Enumerate(ctx, &db.ConnDB{Conn: sqlConn}, router, cache, "orders", assocs, int64(10))
		require.NoError(t, err)

		assert.Contains(t, instants, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		assert.Contains(t, instants, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		assert.Contains(t, instants, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

		for i := 1; i < len(instants); i++ {
			assert.True(t, !instants[i].Before(instants[i-1]), "instants must be sorted ascending")
		}
	})
}
