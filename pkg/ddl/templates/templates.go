// SPDX-License-Identifier: Apache-2.0

// Package templates generates the SQL bodies of a temporal table's
// presentation view and its three INSTEAD rules with text/template,
// adapted from the teacher's pkg/backfill/templates (function.go,
// trigger.go), which generates parameterized PL/pgSQL from Go structs the
// same way.
package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/lib/pq"
)

// Table holds everything the view/rule templates need to know about one
// temporal table. The schema-qualified name fields are already quoted
// (via pkg/ident) by the caller; Columns and PrimaryKey are bare,
// unquoted column names that the templates quote themselves.
type Table struct {
	// PublicView, CurrentTable, HistoryTable are schema-qualified and
	// already quoted, e.g. `"public"."orders"`.
	PublicView   string
	CurrentTable string
	HistoryTable string

	// Columns is the set of non-system, user-declared column names.
	Columns []string

	// PrimaryKey is the single primary-key column name.
	PrimaryKey string
}

func executeTemplate(name, content string, cfg any) (string, error) {
	qi := pq.QuoteIdentifier

	tmpl := template.Must(template.New(name).
		Funcs(template.FuncMap{
			"qi": qi,
			"commaSeparate": func(cols []string) string {
				quoted := make([]string, len(cols))
				for i, c := range cols {
					quoted[i] = qi(c)
				}
				return strings.Join(quoted, ", ")
			},
			"newValues": func(cols []string) string {
				quoted := make([]string, len(cols))
				for i, c := range cols {
					quoted[i] = "NEW." + qi(c)
				}
				return strings.Join(quoted, ", ")
			},
			"setClause": func(cols []string) string {
				quoted := make([]string, len(cols))
				for i, c := range cols {
					quoted[i] = qi(c) + " = NEW." + qi(c)
				}
				return strings.Join(quoted, ", ")
			},
		}).
		Parse(content))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildView renders `CREATE VIEW public.<name> AS SELECT * FROM ONLY
// current.<name>`.
func BuildView(t Table) (string, error) {
	return executeTemplate("view", View, t)
}

// BuildHistoryTable renders the `CREATE TABLE history.<name> (...)
// INHERITS` DDL, including the system columns, the directionality CHECK,
// and the GiST exclusion constraint (Invariant 1).
func BuildHistoryTable(t Table) (string, error) {
	return executeTemplate("history_table", HistoryTable, t)
}

// BuildInsertRule renders the INSERT INSTEAD rule.
func BuildInsertRule(t Table) (string, error) {
	return executeTemplate("rule_insert", RuleInsert, t)
}

// BuildUpdateRule renders the UPDATE INSTEAD rule.
func BuildUpdateRule(t Table) (string, error) {
	return executeTemplate("rule_update", RuleUpdate, t)
}

// BuildDeleteRule renders the DELETE INSTEAD rule.
func BuildDeleteRule(t Table) (string, error) {
	return executeTemplate("rule_delete", RuleDelete, t)
}
