// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"fmt"

	"github.com/lib/pq"
)

// Column is the input DDL document shape: what a caller of create_table or
// add_column supplies. It is adapted from the teacher's
// pkg/migrations.Column, trimmed to what this engine's plans need —
// no foreign keys or CHECK constraints, since cross-table referential
// integrity on historical rows is an explicit spec non-goal.
type Column struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Nullable   bool    `json:"nullable"`
	Unique     bool    `json:"unique"`
	PrimaryKey bool    `json:"pk"`
	Default    *string `json:"default"`
}

// ToSQL renders the column's definition clause for a CREATE TABLE or ADD
// COLUMN statement, following the teacher's ColumnToSQL.
func (c Column) ToSQL() string {
	sql := fmt.Sprintf("%s %s", pq.QuoteIdentifier(c.Name), c.Type)

	if c.PrimaryKey {
		sql += " PRIMARY KEY"
	}
	if c.Unique {
		sql += " UNIQUE"
	}
	if !c.Nullable {
		sql += " NOT NULL"
	}
	if c.Default != nil {
		sql += fmt.Sprintf(" DEFAULT %s", pq.QuoteLiteral(*c.Default))
	}
	return sql
}
