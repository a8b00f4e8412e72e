// SPDX-License-Identifier: Apache-2.0

// Package timemachine is the As-Of Query Rewriter (C7): it rewrites a
// caller's relation to read history rows valid at a given instant, and
// transitively rewrites every joined temporal relation the same way.
//
// The package never imports a concrete relational-mapper/query-builder:
// per spec.md §9's "Relational-mapper integration" note, callers hand in
// any value satisfying RelationBuilder, and this package only ever reads
// its Joins() and calls CTE/Where/OrderBy on it. pkg/timemachine's own
// simplerelation.go supplies a minimal implementation for the CLI and for
// this package's tests.
package timemachine

// JoinSource describes one join target observed in a relation being
// rewritten: the logical table name being joined, as the query-builder
// hook would report it while scanning the generated SQL (spec.md §4.7a).
type JoinSource struct {
	Table string
}

// RelationBuilder is the boundary between this package and whatever
// query-builder a caller is using. AsOf and the join-rewrite hook only
// ever call these four methods.
type RelationBuilder interface {
	// CTE attaches a `WITH name AS (body)` clause to the relation.
	CTE(name, body string)
	// Where merges expr into the relation's WHERE clause.
	Where(expr string)
	// OrderBy merges expr into the relation's ORDER BY clause.
	OrderBy(expr string)
	// Joins reports every join source currently present on the relation,
	// so the join-rewrite hook can add a CTE for each one that is
	// temporal.
	Joins() []JoinSource
}
