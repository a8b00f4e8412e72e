// SPDX-License-Identifier: Apache-2.0

package ddl

import "github.com/google/uuid"

// MaxNameLength is PostgreSQL's NAMEDATALEN-1 limit on identifiers.
// https://www.postgresql.org/docs/current/sql-syntax-lexical.html#SQL-SYNTAX-IDENTIFIERS
const MaxNameLength = 63

// ValidateName checks name against PostgreSQL's identifier length limit.
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return InvalidNameLengthError{Name: name, Max: MaxNameLength}
	}
	return nil
}

// GenerateName returns prefix followed by "_" and a random uuid. When the
// result would exceed MaxNameLength the prefix is truncated, never the
// uuid. create_table uses it for the two indexes it adds to
// history.<name>, following the teacher's practice of minting
// uuid-suffixed temporary names (pkg/migrations.TemporaryName).
func GenerateName(prefix string) string {
	suffix := "_" + uuid.New().String()
	if len(prefix)+len(suffix) > MaxNameLength {
		prefix = prefix[:MaxNameLength-len(suffix)]
	}
	return prefix + suffix
}
