// SPDX-License-Identifier: Apache-2.0

package timemachine

import "strings"

// SimpleRelation is a minimal RelationBuilder: an ordered list of CTEs plus
// a WHERE and ORDER BY clause, enough to drive the CLI's `as-of` command
// and to exercise this package's tests without depending on any
// third-party query builder.
type SimpleRelation struct {
	From    string
	ctes    []cte
	joins   []JoinSource
	where   []string
	orderBy []string
}

type cte struct {
	name, body string
}

// NewSimpleRelation returns a relation reading from `from`, joined (for
// the purposes of the transitive join rewrite) to the given sources.
func NewSimpleRelation(from string, joins ...JoinSource) *SimpleRelation {
	return &SimpleRelation{From: from, joins: joins}
}

func (r *SimpleRelation) CTE(name, body string) {
	r.ctes = append(r.ctes, cte{name: name, body: body})
}

func (r *SimpleRelation) Where(expr string) {
	r.where = append(r.where, expr)
}

func (r *SimpleRelation) OrderBy(expr string) {
	r.orderBy = append(r.orderBy, expr)
}

func (r *SimpleRelation) Joins() []JoinSource {
	return r.joins
}

// SQL renders the accumulated CTEs, FROM, WHERE, and ORDER BY into one
// statement reading `SELECT * FROM <From>`.
func (r *SimpleRelation) SQL() string {
	var b strings.Builder

	if len(r.ctes) > 0 {
		b.WriteString("WITH ")
		for i, c := range r.ctes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.name)
			b.WriteString(" AS (")
			b.WriteString(c.body)
			b.WriteString(")")
		}
		b.WriteString(" ")
	}

	b.WriteString("SELECT * FROM ")
	b.WriteString(r.From)

	if len(r.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(r.where, " AND "))
	}
	if len(r.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(r.orderBy, ", "))
	}

	return b.String()
}
