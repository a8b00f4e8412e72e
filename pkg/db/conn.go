// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"database/sql"
)

// ConnDB adapts a *sql.Conn to the DB interface, for callers (the
// Introspector, the Timestamp Enumerator) that must issue statements on
// the same physical connection a *schemarouter.Router is pinned to, but
// outside of any single transaction.
type ConnDB struct {
	Conn *sql.Conn
}

func (c *ConnDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.Conn.ExecContext(ctx, query, args...)
}

func (c *ConnDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.Conn.QueryContext(ctx, query, args...)
}

func (c *ConnDB) WithRetryableTransaction(ctx context.Context, f func(context.Context, *sql.Tx) error) error {
	tx, err := c.Conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := f(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (c *ConnDB) Close() error { return c.Conn.Close() }
