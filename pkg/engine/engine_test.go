// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/bitemporaltest"
	"github.com/bitempodb/bitempodb/pkg/ddl"
	"github.com/bitempodb/bitempodb/pkg/engine"
)

func TestMain(m *testing.M) {
	bitemporaltest.SharedTestMain(m)
}

func TestExecuteCreatesTemporalTable(t *testing.T) {
	t.Parallel()

	bitemporaltest.WithEngine(t, func(e *engine.Engine, conn *sql.DB) {
		op := &ddl.OpCreateTable{
			Name:     "widgets",
			Temporal: true,
			Columns: []ddl.Column{
				{Name: "id", Type: "bigserial", PrimaryKey: true},
				{Name: "name", Type: "text"},
			},
		}

		require.NoError(t, e.Execute(t.Context(), op))

		temporal, err := e.Cache.IsTemporal(t.Context(), "widgets")
		require.NoError(t, err)
		assert.True(t, temporal)

		_, err = conn.ExecContext(t.Context(), `INSERT INTO public.widgets (name) VALUES ('gadget')`)
		require.NoError(t, err)

		var count int
		err = conn.QueryRowContext(t.Context(), `SELECT count(*) FROM history.widgets`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestExecuteValidationFailureLeavesSchemaUntouched(t *testing.T) {
	t.Parallel()

	bitemporaltest.WithEngine(t, func(e *engine.Engine, _ *sql.DB) {
		op := &ddl.OpCreateTable{
			Name:     "widgets",
			Temporal: true,
			Columns:  []ddl.Column{{Name: "name", Type: "text"}},
		}

		err := e.Execute(t.Context(), op)
		assert.ErrorAs(t, err, &ddl.PrimaryKeyRequiredError{})
		assert.Nil(t, e.Schema.GetTable("widgets"))
	})
}
