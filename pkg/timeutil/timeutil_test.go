// SPDX-License-Identifier: Apache-2.0

package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitempodb/bitempodb/pkg/timeutil"
)

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []string{
		"2024-01-02 03:04:05.000000",
		"1999-12-31 23:59:59.999999",
		"0001-01-01 00:00:00.000000",
	}

	for _, s := range cases {
		ts, err := timeutil.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, timeutil.Format(ts))
		assert.True(t, timeutil.IsUTC(ts))
	}
}

func TestParseTruncatesFractionalSeconds(t *testing.T) {
	t.Parallel()

	ts, err := timeutil.Parse("2024-01-02 03:04:05.1234567")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 03:04:05.123456", timeutil.Format(ts))
}

func TestParsePadsShortFraction(t *testing.T) {
	t.Parallel()

	ts, err := timeutil.Parse("2024-01-02 03:04:05.5")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 03:04:05.500000", timeutil.Format(ts))
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := timeutil.Parse("not-a-timestamp")
	require.Error(t, err)
	var malformed timeutil.MalformedTimestampError
	assert.ErrorAs(t, err, &malformed)
}

func TestIsUTC(t *testing.T) {
	t.Parallel()

	assert.True(t, timeutil.IsUTC(time.Now().UTC()))
	assert.False(t, timeutil.IsUTC(time.Now().In(time.FixedZone("CET", 3600))))
}
