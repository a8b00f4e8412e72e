// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"database/sql"
)

// TxDB adapts a *sql.Tx to the DB interface so that DDL Compiler (C5)
// operations, which are written against DB and know nothing about
// transactions, can be driven one statement at a time inside a single
// RDB.WithRetryableTransaction call. This is the Go equivalent of spec.md
// §5's "every multi-statement DDL operation runs inside a single
// transaction" invariant; the teacher does not need an equivalent type
// because its Start/Complete phases issue top-level, independently
// committed statements against *sql.DB.
type TxDB struct {
	Tx *sql.Tx
}

func (t *TxDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.Tx.ExecContext(ctx, query, args...)
}

func (t *TxDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.Tx.QueryContext(ctx, query, args...)
}

// WithRetryableTransaction runs f against the same underlying transaction;
// nested transactions are not supported by PostgreSQL, so this does not
// retry, it simply hands back the existing tx.
func (t *TxDB) WithRetryableTransaction(ctx context.Context, f func(context.Context, *sql.Tx) error) error {
	return f(ctx, t.Tx)
}

func (t *TxDB) Close() error { return nil }
