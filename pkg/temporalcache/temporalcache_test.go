// SPDX-License-Identifier: Apache-2.0

package temporalcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

type fakeProber struct {
	calls  int
	tables map[string]bool
}

func (f *fakeProber) TableExists(ctx context.Context, schema, table string) (bool, error) {
	f.calls++
	return f.tables[schema+"."+table], nil
}

func TestIsTemporalMemoizesMiss(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{tables: map[string]bool{
		"current.orders": true,
		"history.orders": true,
	}}
	c := temporalcache.New(prober)

	temporal, err := c.IsTemporal(context.Background(), "orders")
	require.NoError(t, err)
	assert.True(t, temporal)
	assert.Equal(t, 2, prober.calls)

	// Second call is served from cache, no further probes.
	temporal, err = c.IsTemporal(context.Background(), "orders")
	require.NoError(t, err)
	assert.True(t, temporal)
	assert.Equal(t, 2, prober.calls)
}

func TestIsTemporalFalseWhenOnlyOneSchemaHasTable(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{tables: map[string]bool{
		"current.widgets": true,
	}}
	c := temporalcache.New(prober)

	temporal, err := c.IsTemporal(context.Background(), "widgets")
	require.NoError(t, err)
	assert.False(t, temporal)
}

func TestAddDeleteRename(t *testing.T) {
	t.Parallel()

	c := temporalcache.New(&fakeProber{})

	c.Add("orders")
	temporal, err := c.IsTemporal(context.Background(), "orders")
	require.NoError(t, err)
	assert.True(t, temporal)

	c.Rename("orders", "purchase_orders")
	temporal, err = c.IsTemporal(context.Background(), "purchase_orders")
	require.NoError(t, err)
	assert.True(t, temporal)

	c.Delete("purchase_orders")
	// Deleting clears the cache entry; re-probing a prober with no tables
	// configured for "purchase_orders" yields false.
	temporal, err = c.IsTemporal(context.Background(), "purchase_orders")
	require.NoError(t, err)
	assert.False(t, temporal)
}

func TestQuotedTableNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"history"."orders"`, temporalcache.QuotedHistoryTable("orders"))
	assert.Equal(t, `"current"."orders"`, temporalcache.QuotedCurrentTable("orders"))
}
