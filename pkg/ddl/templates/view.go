// SPDX-License-Identifier: Apache-2.0

package templates

// View is the presentation layer (spec §3): a plain view over ONLY the
// current-state table, so querying the view directly never surfaces
// inherited history rows.
const View = `CREATE VIEW {{ .PublicView }} AS
    SELECT * FROM ONLY {{ .CurrentTable }};
`
