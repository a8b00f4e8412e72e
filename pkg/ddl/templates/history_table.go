// SPDX-License-Identifier: Apache-2.0

package templates

// HistoryTable creates the history table: it INHERITS the current table
// (so it carries the logical primary key and every user column for
// free) and adds the four system columns plus the two invariants that
// make the table bitemporal:
//
//   - Invariant 2 (directionality): CHECK (valid_from < valid_to).
//   - Invariant 1 (partitioning): a GiST exclusion constraint over
//     box(point(epoch(valid_from), pk), point(epoch(valid_to - 1ms), pk))
//     using &&, so no two history rows of the same logical id may have
//     overlapping validity intervals. The 1ms epsilon on valid_to keeps
//     a box's upper edge strictly below the epoch of the row that closes
//     it: box overlap via && is inclusive of shared edges, so without
//     the epsilon two adjacent rows (one closing at T, the next opening
//     at T, exactly what the UPDATE rule produces) would touch at
//     x=epoch(T) and be reported as overlapping. btree_gist supplies the
//     "=" support needed for the pk component of the box.
const HistoryTable = `CREATE TABLE {{ .HistoryTable }} (
    hid BIGSERIAL PRIMARY KEY,
    valid_from TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    valid_to TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT '9999-12-31',
    recorded_at TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
    CONSTRAINT {{ printf "%s_valid_period_check" .PrimaryKey | qi }} CHECK (valid_from < valid_to),
    EXCLUDE USING gist (
        box(
            point(extract(epoch from valid_from), {{ .PrimaryKey | qi }}),
            point(extract(epoch from valid_to - interval '1 millisecond'), {{ .PrimaryKey | qi }})
        ) WITH &&
    )
) INHERITS ({{ .CurrentTable }});
`
