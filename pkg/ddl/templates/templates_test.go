// SPDX-License-Identifier: Apache-2.0

package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/ddl/templates"
)

func fooTable() templates.Table {
	return templates.Table{
		PublicView:   `"public"."foos"`,
		CurrentTable: `"current"."foos"`,
		HistoryTable: `"history"."foos"`,
		Columns:      []string{"name"},
		PrimaryKey:   "id",
	}
}

func TestBuildView(t *testing.T) {
	t.Parallel()

	sql, err := templates.BuildView(fooTable())
	require.NoError(t, err)
	assert.Contains(t, sql, `CREATE VIEW "public"."foos" AS`)
	assert.Contains(t, sql, `SELECT * FROM ONLY "current"."foos"`)
}

func TestBuildHistoryTable(t *testing.T) {
	t.Parallel()

	sql, err := templates.BuildHistoryTable(fooTable())
	require.NoError(t, err)
	assert.Contains(t, sql, `INHERITS ("current"."foos")`)
	assert.Contains(t, sql, `CHECK (valid_from < valid_to)`)
	assert.Contains(t, sql, `EXCLUDE USING gist`)
	assert.Contains(t, sql, `valid_to TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT '9999-12-31'`)
}

func TestBuildInsertRule(t *testing.T) {
	t.Parallel()

	sql, err := templates.BuildInsertRule(fooTable())
	require.NoError(t, err)
	assert.Contains(t, sql, `CREATE RULE "id_insert" AS ON INSERT TO "public"."foos"`)
	assert.Contains(t, sql, `INSERT INTO "current"."foos" ("name")`)
	assert.Contains(t, sql, `VALUES (NEW."name")`)
	assert.Contains(t, sql, `WHERE "id" = lastval()`)
}

func TestBuildUpdateRule(t *testing.T) {
	t.Parallel()

	sql, err := templates.BuildUpdateRule(fooTable())
	require.NoError(t, err)

	closeIdx := indexOf(t, sql, `UPDATE "history"."foos"`)
	insertIdx := indexOf(t, sql, `INSERT INTO "history"."foos"`)
	updateIdx := indexOf(t, sql, `UPDATE "current"."foos"`)

	// Ordering is load-bearing: close, then insert, then update-current.
	assert.Less(t, closeIdx, insertIdx)
	assert.Less(t, insertIdx, updateIdx)
}

func TestBuildDeleteRule(t *testing.T) {
	t.Parallel()

	sql, err := templates.BuildDeleteRule(fooTable())
	require.NoError(t, err)
	assert.Contains(t, sql, `UPDATE "history"."foos"`)
	assert.Contains(t, sql, `DELETE FROM "current"."foos"`)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", needle, haystack)
	return -1
}
