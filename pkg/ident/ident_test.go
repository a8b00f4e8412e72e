// SPDX-License-Identifier: Apache-2.0

package ident_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitempodb/bitempodb/pkg/ident"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"foo"`, ident.Quote("foo"))
	assert.Equal(t, `"fo""o"`, ident.Quote(`fo"o`))
}

func TestQuoteQualified(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"history"."orders"`, ident.QuoteQualified("history", "orders"))
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `'it''s'`, ident.Literal("it's"))
}

func TestTimestampLiteral(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, `'2024-01-02 03:04:05.000000'`, ident.TimestampLiteral(ts))
}
