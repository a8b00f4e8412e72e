// SPDX-License-Identifier: Apache-2.0

// Package ident is the single place in this repository allowed to turn a Go
// string into a fragment of SQL. Every identifier (schema/table/column/rule
// name) and every literal (string or timestamp) that the DDL Compiler (C5)
// and the TimeMachine Query Layer (C7/C8) emit passes through here first,
// following the teacher's rule of never concatenating unescaped user input
// into a query (pkg/migrations uses pq.QuoteIdentifier/pq.QuoteLiteral the
// same way throughout op_*.go).
package ident

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

// Quote double-quotes a schema, table, column, rule, or constraint name,
// escaping embedded double quotes per PostgreSQL's identifier rules.
func Quote(name string) string {
	return pq.QuoteIdentifier(name)
}

// QuoteQualified quotes a "schema.table" pair as two separate identifiers
// joined by a literal dot, since PostgreSQL does not allow quoting both
// parts as a single identifier.
func QuoteQualified(schema, name string) string {
	return fmt.Sprintf("%s.%s", Quote(schema), Quote(name))
}

// Literal single-quotes a string literal, escaping embedded quotes and
// backslashes per PostgreSQL's standard_conforming_strings behavior.
func Literal(value string) string {
	return pq.QuoteLiteral(value)
}

// TimestampLiteral formats t as a UTC wire timestamp (C1) and single-quotes
// it, the form required everywhere a `valid_from`/`valid_to`/as-of instant
// is spliced into a query or DDL statement.
func TimestampLiteral(t time.Time) string {
	return Literal(timeutil.Format(t))
}
