// SPDX-License-Identifier: Apache-2.0

// Package ddl is the DDL Compiler (C5): it translates relational DDL
// operations (create/rename/drop table; add/rename/change/remove column;
// add/remove index) into the coordinated sequence of PostgreSQL objects
// that implement bitemporal semantics — the current/history schemas, the
// presentation view, and its three INSTEAD rules.
//
// Unlike the teacher's two-phase expand/contract migrations
// (Start/Complete/Rollback spread across possibly-long-lived schema
// versions), every Operation here runs to completion inside one
// transaction (spec §5, "Transactions"): there is no intermediate
// dual-schema state to roll forward or back.
package ddl

import (
	"context"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/schema"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

// Operation is one DDL statement translated into its full bitemporal
// plan. Validate runs first, against the in-memory virtual schema, before
// any statement reaches the database; Execute runs every statement of the
// plan against tx, which the caller has already wrapped in a single
// transaction.
type Operation interface {
	Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error
	Validate(s *schema.Schema) error
}

// tableNames are the three schema-qualified, quoted identifiers used
// throughout a plan.
type tableNames struct {
	Public  string
	Current string
	History string
}

func namesFor(table string) tableNames {
	return tableNames{
		Public:  ident.QuoteQualified("public", table),
		Current: ident.QuoteQualified("current", table),
		History: ident.QuoteQualified("history", table),
	}
}
