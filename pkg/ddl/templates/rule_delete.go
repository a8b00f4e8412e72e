// SPDX-License-Identifier: Apache-2.0

package templates

// RuleDelete is the DELETE INSTEAD rule: close the open history row and
// remove the row from the current table. The historical trail is never
// removed (Invariant 4, "no deletion of history").
const RuleDelete = `CREATE RULE {{ printf "%s_delete" .PrimaryKey | qi }} AS ON DELETE TO {{ .PublicView }}
DO INSTEAD (
    UPDATE {{ .HistoryTable }}
    SET valid_to = (now() AT TIME ZONE 'utc')
    WHERE {{ .PrimaryKey | qi }} = OLD.{{ .PrimaryKey | qi }}
      AND valid_to = '9999-12-31';

    DELETE FROM {{ .CurrentTable }}
    WHERE {{ .PrimaryKey | qi }} = OLD.{{ .PrimaryKey | qi }}
);
`
