// SPDX-License-Identifier: Apache-2.0

package timemachine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/temporalcache"
	"github.com/bitempodb/bitempodb/pkg/timemachine"
)

type fakeProber struct {
	temporal map[string]bool
}

func (p *fakeProber) TableExists(ctx context.Context, schema, table string) (bool, error) {
	return p.temporal[table], nil
}

func TestAsOfAttachesHistoryCTE(t *testing.T) {
	t.Parallel()

	cache := temporalcache.New(&fakeProber{})
	rel := timemachine.NewSimpleRelation("orders")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := timemachine.AsOf(context.Background(), rel, "orders", at, "status = 'open'", "id", cache)
	require.NoError(t, err)

	sql := rel.SQL()
	assert.Contains(t, sql, `WITH orders AS (`)
	assert.Contains(t, sql, `FROM "history"."orders"`)
	assert.Contains(t, sql, `WHERE status = 'open'`)
	assert.Contains(t, sql, `ORDER BY id`)
}

func TestAsOfRewritesTemporalJoinsOnce(t *testing.T) {
	t.Parallel()

	cache := temporalcache.New(&fakeProber{temporal: map[string]bool{"customers": true, "regions": false}})
	rel := timemachine.NewSimpleRelation("orders",
		timemachine.JoinSource{Table: "customers"},
		timemachine.JoinSource{Table: "customers"}, // duplicate join source, rewritten once
		timemachine.JoinSource{Table: "regions"},    // not temporal, left alone
	)

	err := timemachine.AsOf(context.Background(), rel, "orders", time.Now().UTC(), "", "", cache)
	require.NoError(t, err)

	sql := rel.SQL()
	assert.Equal(t, 1, countOccurrences(sql, `customers AS (`))
	assert.NotContains(t, sql, `regions AS (`)
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; ; {
		idx := indexOf(haystack[i:], needle)
		if idx < 0 {
			return count
		}
		count++
		i += idx + len(needle)
	}
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestHasAggregateDetectsStandardAggregates(t *testing.T) {
	t.Parallel()

	assert.True(t, timemachine.HasAggregate("count(*)"))
	assert.True(t, timemachine.HasAggregate("SUM(price)"))
	assert.True(t, timemachine.HasAggregate("array_agg(name)"))
	assert.False(t, timemachine.HasAggregate("name, price"))
}

func TestOfSuppressesOrderingForAggregates(t *testing.T) {
	t.Parallel()

	q, args := timemachine.Of("widgets", "id", int64(1), "count(*)")
	assert.NotContains(t, q, "ORDER BY")
	assert.NotContains(t, q, "as_of_time")
	assert.Equal(t, []any{int64(1)}, args)

	q2, _ := timemachine.Of("widgets", "id", int64(1), "*")
	assert.Contains(t, q2, "ORDER BY recorded_at, hid")
	assert.Contains(t, q2, "as_of_time")
}

func TestAllOrdersByRecordedAtThenHid(t *testing.T) {
	t.Parallel()

	q := timemachine.All("widgets", "*")
	assert.Contains(t, q, `FROM "history"."widgets"`)
	assert.Contains(t, q, "ORDER BY recorded_at, hid")
}
