// SPDX-License-Identifier: Apache-2.0

// Package timeutil parses and formats the UTC, microsecond-precision
// timestamps used throughout the bitemporal engine. Every timestamp that
// crosses the SQL boundary goes through Parse/Format so that the literal
// written to PostgreSQL's `timestamp without time zone` columns is always
// unambiguous.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// layout is the canonical wire format: six-digit, zero-padded
	// microseconds, no timezone suffix (the column type carries none).
	layout = "2006-01-02 15:04:05.000000"

	// inputLayout is the same layout used to parse a caller-supplied
	// fractional part of up to six digits; shorter fractions are
	// right-padded with zeros before parsing.
	inputLayout = "2006-01-02 15:04:05.000000"
)

// EndOfTime is the sentinel `valid_to` assigned to a freshly opened history
// row (Invariant 3, spec.md §3).
var EndOfTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// MalformedTimestampError is returned by Parse when s does not match
// `YYYY-MM-DD HH:MM:SS[.ffffff]`.
type MalformedTimestampError struct {
	Value string
}

func (e MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp: %q", e.Value)
}

// Parse accepts strings matching `YYYY-MM-DD HH:MM:SS[.ffffff]`, always
// interpreted as UTC. The fractional part, if present, is truncated to six
// digits rather than rounded, matching the teacher's posture of never
// silently adjusting a value the caller supplied.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	datePart, fracPart, hasFrac := strings.Cut(s, ".")
	if hasFrac {
		if len(fracPart) > 6 {
			fracPart = fracPart[:6]
		}
		for len(fracPart) < 6 {
			fracPart += "0"
		}
		s = datePart + "." + fracPart
	} else {
		s = datePart + ".000000"
	}

	t, err := time.Parse(inputLayout, s)
	if err != nil {
		return time.Time{}, MalformedTimestampError{Value: s}
	}
	return t.UTC(), nil
}

// Format emits `YYYY-MM-DD HH:MM:SS.uuuuuu`, zero-padding microseconds to
// six digits. It does not re-derive UTC-ness from t; callers must ensure t
// is already UTC (amend.Period rejects non-UTC input with
// NonUTCTimestampError; timemachine.AsOf converts its instant to UTC).
func Format(t time.Time) string {
	return t.Format(layout)
}

// IsUTC reports whether t's location is exactly time.UTC, the check used by
// the amendment utility (C9) to enforce the UTC-discipline invariant
// (spec.md §3 Invariant 5).
func IsUTC(t time.Time) bool {
	return t.Location() == time.UTC
}
