// SPDX-License-Identifier: Apache-2.0

package templates

// RuleInsert is the INSERT INSTEAD rule: insert into the current table
// (letting its serial primary key default fire), then insert the matching
// history row, taking the new primary key from lastval() -- the value
// most recently produced by nextval() in this session, i.e. the serial
// default that just fired above -- and opening its validity at `now()`.
const RuleInsert = `CREATE RULE {{ printf "%s_insert" .PrimaryKey | qi }} AS ON INSERT TO {{ .PublicView }}
DO INSTEAD (
    INSERT INTO {{ .CurrentTable }} ({{ .Columns | commaSeparate }})
    VALUES ({{ .Columns | newValues }});

    INSERT INTO {{ .HistoryTable }} ({{ .PrimaryKey | qi }}, {{ .Columns | commaSeparate }}, valid_from)
    SELECT {{ .PrimaryKey | qi }}, {{ .Columns | commaSeparate }}, (now() AT TIME ZONE 'utc')
    FROM {{ .CurrentTable }}
    WHERE {{ .PrimaryKey | qi }} = lastval()
);
`
