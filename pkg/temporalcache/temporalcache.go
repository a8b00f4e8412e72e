// SPDX-License-Identifier: Apache-2.0

// Package temporalcache implements the Temporal Object Cache (C4): a
// process-wide mapping from logical table name to "is this table
// temporal?", populated lazily from the database and mutated by the DDL
// Compiler (C5) on create_table/drop_table/rename_table. It plays the same
// role the teacher's pkg/schema.Schema plays for pgroll's virtual schema,
// but scoped to a single boolean fact per table and explicitly
// engine-scoped rather than global, per spec.md §9 ("Process-wide state").
package temporalcache

import (
	"context"
	"database/sql"
	"sync"

	"github.com/bitempodb/bitempodb/pkg/ident"
)

// Prober checks, against the live database, whether both `current.<name>`
// and `history.<name>` exist. Production code satisfies this with a
// *sql.DB/*sql.Conn-backed implementation; tests can supply a fake.
type Prober interface {
	TableExists(ctx context.Context, schema, table string) (bool, error)
}

// DBProber is the production Prober, querying pg_catalog directly rather
// than through information_schema, mirroring the catalog-query style of the
// teacher's pkg/state read_schema function.
type DBProber struct {
	Conn *sql.DB
}

func (p DBProber) TableExists(ctx context.Context, schema, table string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM pg_catalog.pg_class c
			JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE n.nspname = $1 AND c.relname = $2 AND c.relkind IN ('r', 'p')
		)`
	var exists bool
	if err := p.Conn.QueryRowContext(ctx, q, schema, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Cache is the engine-scoped temporal object cache. The zero value is not
// usable; construct with New.
type Cache struct {
	prober Prober

	mu      sync.RWMutex
	entries map[string]bool
}

// New returns a Cache that falls back to prober on a miss.
func New(prober Prober) *Cache {
	return &Cache{
		prober:  prober,
		entries: make(map[string]bool),
	}
}

// IsTemporal reports whether name is a temporal table. A cache miss probes
// `current.<name>` and `history.<name>` and memoizes the result -
// concurrency-safe for the single-writer/multi-reader contract of spec.md
// §5 ("Shared resources").
func (c *Cache) IsTemporal(ctx context.Context, name string) (bool, error) {
	c.mu.RLock()
	v, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	current, err := c.prober.TableExists(ctx, "current", name)
	if err != nil {
		return false, err
	}
	history, err := c.prober.TableExists(ctx, "history", name)
	if err != nil {
		return false, err
	}
	temporal := current && history

	c.mu.Lock()
	c.entries[name] = temporal
	c.mu.Unlock()

	return temporal, nil
}

// Add records name as temporal, called by the DDL Compiler on a successful
// create_table.
func (c *Cache) Add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = true
}

// Delete removes any cached fact about name, called on drop_table so the
// next IsTemporal call re-probes rather than trusting stale state.
func (c *Cache) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Rename atomically moves the cached fact (if any) from the old logical
// name to the new one, called on rename_table.
func (c *Cache) Rename(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[from]
	delete(c.entries, from)
	if ok {
		c.entries[to] = v
	}
}

// QuotedHistoryTable returns the fully-qualified, quoted name of the
// history table backing the given logical table, a convenience used by C7
// and C8 when composing CTEs.
func QuotedHistoryTable(name string) string {
	return ident.QuoteQualified("history", name)
}

// QuotedCurrentTable returns the fully-qualified, quoted name of the
// current-state table backing the given logical table.
func QuotedCurrentTable(name string) string {
	return ident.QuoteQualified("current", name)
}
