// SPDX-License-Identifier: Apache-2.0

// Package engine is the composition root wiring the Temporal Schema
// Manager and TimeMachine Query Layer together: it opens the database
// connection, pins the single physical connection the Schema Router
// needs, and constructs the Temporal Object Cache, DDL logger, and
// virtual schema every other package is handed. Grounded on the teacher's
// pkg/roll.Roll, which plays the same "one struct, one connection, every
// subsystem handed a reference to it" role for pgroll's migration engine.
package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ddl"
	"github.com/bitempodb/bitempodb/pkg/schema"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

// Engine holds the live wiring for one database connection: the pooled
// *sql.DB (for statement retry via db.RDB), a pinned *sql.Conn (for the
// Schema Router and Introspector, which depend on search_path being
// observed consistently across statements), and the process-wide state
// (temporal cache, virtual schema, logger) the DDL Compiler and
// TimeMachine Query Layer consult.
type Engine struct {
	rawDB *sql.DB
	conn  *sql.Conn

	DB     *db.RDB
	Router *schemarouter.Router
	Cache  *temporalcache.Cache
	Schema *schema.Schema
	Logger ddl.Logger
}

// New opens connStr, pins one physical connection for schema-scoped work,
// and wires up the cache/router/schema/logger. It does not create the
// btree_gist extension or the current/history schemas; call Bootstrap for
// that.
func New(ctx context.Context, connStr string) (*Engine, error) {
	rawDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	conn, err := rawDB.Conn(ctx)
	if err != nil {
		_ = rawDB.Close()
		return nil, fmt.Errorf("pinning connection: %w", err)
	}

	rdb := &db.RDB{DB: rawDB}
	router := schemarouter.New(conn)
	cache := temporalcache.New(&temporalcache.DBProber{Conn: rawDB})

	return &Engine{
		rawDB:  rawDB,
		conn:   conn,
		DB:     rdb,
		Router: router,
		Cache:  cache,
		Schema: schema.New(),
		Logger: ddl.NewLogger(),
	}, nil
}

// Bootstrap creates the preconditions every temporal table depends on:
// the btree_gist extension (needed by the GiST exclusion constraint on
// every history table) and the current/history schemas. create_table's
// own plan repeats the `IF NOT EXISTS` forms defensively, so calling
// Bootstrap is an optimization, not a requirement.
func (e *Engine) Bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`CREATE SCHEMA IF NOT EXISTS current`,
		`CREATE SCHEMA IF NOT EXISTS history`,
	}
	for _, s := range stmts {
		if _, err := e.rawDB.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("bootstrapping engine: %w", err)
		}
	}
	return nil
}

// Execute validates op against the virtual schema and, on success, runs
// it inside a single retryable transaction pinned to the Router's
// connection (spec.md §4.5a/§5: one transaction per DDL operation,
// sharing the connection the Schema Router observes).
func (e *Engine) Execute(ctx context.Context, op ddl.Operation) error {
	if err := op.Validate(e.Schema); err != nil {
		return err
	}

	e.Logger.LogOperationStart(op)

	err := e.DB.WithRetryableConnTransaction(ctx, e.conn, func(ctx context.Context, tx *sql.Tx) error {
		return op.Execute(ctx, &db.TxDB{Tx: tx}, e.Cache, e.Router)
	})
	if err != nil {
		e.Logger.LogOperationRollback(op, err)
		return err
	}

	e.Logger.LogOperationComplete(op)
	return nil
}

// Conn exposes the pinned connection, for callers (the Timestamp
// Enumerator, Introspector) that must issue statements on it directly,
// outside of Execute's transaction.
func (e *Engine) Conn() *sql.Conn {
	return e.conn
}

// Close releases the pinned connection and the underlying pool.
func (e *Engine) Close() error {
	if err := e.conn.Close(); err != nil {
		return err
	}
	return e.rawDB.Close()
}
