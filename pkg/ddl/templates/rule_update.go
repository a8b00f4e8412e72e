// SPDX-License-Identifier: Apache-2.0

package templates

// RuleUpdate is the UPDATE INSTEAD rule. Statement order is load-bearing
// (spec §5, "Ordering guarantees"): the currently open history row must
// close before the new one opens, or the exclusion constraint fires on
// overlap with itself. `now()` evaluates once per statement, so the
// closed row's valid_to exactly matches the new row's valid_from, leaving
// no gap.
const RuleUpdate = `CREATE RULE {{ printf "%s_update" .PrimaryKey | qi }} AS ON UPDATE TO {{ .PublicView }}
DO INSTEAD (
    UPDATE {{ .HistoryTable }}
    SET valid_to = (now() AT TIME ZONE 'utc')
    WHERE {{ .PrimaryKey | qi }} = OLD.{{ .PrimaryKey | qi }}
      AND valid_to = '9999-12-31';

    INSERT INTO {{ .HistoryTable }} ({{ .PrimaryKey | qi }}, {{ .Columns | commaSeparate }}, valid_from)
    VALUES (OLD.{{ .PrimaryKey | qi }}, {{ .Columns | newValues }}, (now() AT TIME ZONE 'utc'));

    UPDATE {{ .CurrentTable }}
    SET {{ .Columns | setClause }}
    WHERE {{ .PrimaryKey | qi }} = OLD.{{ .PrimaryKey | qi }}
);
`
