// SPDX-License-Identifier: Apache-2.0

package timemachine

import "regexp"

// aggregateFunctionPattern matches any of PostgreSQL's built-in aggregate
// functions appearing as a call in a select list (spec.md §4.7b): when one
// is present, the engine suppresses the implicit `ORDER BY (recorded_at,
// hid)` and the `as_of_time` projection it would otherwise add, since an
// aggregated result has no single row to attach either to.
var aggregateFunctionPattern = regexp.MustCompile(`(?i)\b(` +
	`min|max|sum|count|avg|stddev|stddev_pop|stddev_samp|variance|var_pop|var_samp|` +
	`corr|regr_avgx|regr_avgy|regr_count|regr_intercept|regr_r2|regr_slope|regr_sxx|regr_sxy|regr_syy|` +
	`bit_and|bit_or|bool_and|bool_or|array_agg|string_agg|xmlagg|every` +
	`)\s*\(`)

// HasAggregate reports whether selectList contains a call to one of
// PostgreSQL's standard aggregate functions.
func HasAggregate(selectList string) bool {
	return aggregateFunctionPattern.MatchString(selectList)
}
