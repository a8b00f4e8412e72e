// SPDX-License-Identifier: Apache-2.0

// Package schemarouter implements the Schema Router (C3): running a body of
// work with the connection's `search_path` temporarily pointed at a given
// schema, with nested-call discipline and resilience to an already-aborted
// transaction. It is the one place besides pkg/db that talks to the
// connection's session state rather than to table data, following the
// teacher's separation between pkg/db (statement retry) and pkg/roll
// (connection setup, including its own one-shot search_path assignment in
// setupConn).
package schemarouter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"

	"github.com/bitempodb/bitempodb/pkg/ident"
)

// txAbortedErrorCode is Postgres' "current transaction is aborted, commands
// ignored until end of transaction block" error.
const txAbortedErrorCode pq.ErrorCode = "25P02"

// AbortedTransactionPathRestoreError wraps a body error that occurred while
// the enclosing transaction was already aborted; Router defers the
// search_path restoration rather than attempting (and failing) another
// statement on a dead transaction.
type AbortedTransactionPathRestoreError struct {
	Err error
}

func (e AbortedTransactionPathRestoreError) Error() string {
	return fmt.Sprintf("search_path restore deferred after aborted transaction: %s", e.Err)
}

func (e AbortedTransactionPathRestoreError) Unwrap() error { return e.Err }

// Router executes blocks of work under a specified schema search_path on a
// single physical connection. It must be constructed from a pinned
// *sql.Conn (not a pooled *sql.DB) because search_path is session state:
// two statements issued against different pooled connections would not
// observe each other's SET search_path.
type Router struct {
	conn *sql.Conn

	mu         sync.Mutex
	depth      int
	cached     string
	cacheValid bool
}

// New returns a Router bound to conn.
func New(conn *sql.Conn) *Router {
	return &Router{conn: conn}
}

// OnSchema executes body with search_path set to schema. When allowNesting
// is false, a call nested inside another OnSchema frame is a no-op with
// respect to path changes: body runs under whatever schema the outer frame
// already established. Only the outermost frame mutates search_path; it is
// always restored on exit, success or failure, unless the transaction is
// already aborted, in which case restoration is deferred and the cached
// path is invalidated so the next read refreshes from the server.
func (r *Router) OnSchema(ctx context.Context, schema string, allowNesting bool, body func(ctx context.Context) error) error {
	r.mu.Lock()
	outermost := r.depth == 0
	if !outermost && !allowNesting {
		r.mu.Unlock()
		return body(ctx)
	}

	var saved string
	if outermost {
		var err error
		saved, err = r.currentSearchPathLocked(ctx)
		if err != nil {
			r.mu.Unlock()
			return fmt.Errorf("reading current search_path: %w", err)
		}
		if _, err := r.conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", ident.Quote(schema))); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("setting search_path to %q: %w", schema, err)
		}
		r.cached = schema
		r.cacheValid = true
	}
	r.depth++
	r.mu.Unlock()

	bodyErr := body(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.depth--

	if !outermost {
		return bodyErr
	}

	if isAbortedTransaction(bodyErr) {
		// Any further statement on this connection will itself fail with
		// the same aborted-transaction error, so don't attempt the
		// restoring SET; just mark the cache stale.
		r.cacheValid = false
		return AbortedTransactionPathRestoreError{Err: bodyErr}
	}

	if _, err := r.conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", saved)); err != nil {
		r.cacheValid = false
		if bodyErr != nil {
			return bodyErr
		}
		return fmt.Errorf("restoring search_path to %q: %w", saved, err)
	}
	r.cached = saved
	r.cacheValid = true

	return bodyErr
}

// currentSearchPathLocked returns the cached search_path if valid, or reads
// it fresh from the server (and caches the result) otherwise. Callers must
// hold r.mu.
func (r *Router) currentSearchPathLocked(ctx context.Context) (string, error) {
	if r.cacheValid {
		return r.cached, nil
	}

	var path string
	row := r.conn.QueryRowContext(ctx, "SHOW search_path")
	if err := row.Scan(&path); err != nil {
		return "", err
	}
	r.cached = path
	r.cacheValid = true
	return path, nil
}

func isAbortedTransaction(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == txAbortedErrorCode
	}
	var deferred AbortedTransactionPathRestoreError
	return errors.As(err, &deferred)
}
