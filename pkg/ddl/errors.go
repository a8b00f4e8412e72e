// SPDX-License-Identifier: Apache-2.0

package ddl

import "fmt"

// TableAlreadyExistsError is returned by create_table when the logical
// table name is already registered.
type TableAlreadyExistsError struct {
	Name string
}

func (e TableAlreadyExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Name)
}

// TableDoesNotExistError is returned when an operation references a
// logical table the schema has no record of.
type TableDoesNotExistError struct {
	Name string
}

func (e TableDoesNotExistError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Name)
}

// ColumnAlreadyExistsError is returned by add_column when the column name
// is already in use on the table.
type ColumnAlreadyExistsError struct {
	Table string
	Name  string
}

func (e ColumnAlreadyExistsError) Error() string {
	return fmt.Sprintf("column %q already exists in table %q", e.Name, e.Table)
}

// ColumnDoesNotExistError is returned when an operation references a
// column that does not exist on the table.
type ColumnDoesNotExistError struct {
	Table string
	Name  string
}

func (e ColumnDoesNotExistError) Error() string {
	return fmt.Sprintf("column %q does not exist on table %q", e.Name, e.Table)
}

// IndexAlreadyExistsError is returned by add_index when the index name is
// already in use.
type IndexAlreadyExistsError struct {
	Name string
}

func (e IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index %q already exists", e.Name)
}

// IndexDoesNotExistError is returned by remove_index when the named index
// is not registered on the table.
type IndexDoesNotExistError struct {
	Name string
}

func (e IndexDoesNotExistError) Error() string {
	return fmt.Sprintf("index %q does not exist", e.Name)
}

// PrimaryKeyRequiredError is returned by create_table(temporal: true) when
// no column is marked as the primary key (spec §7, `PrimaryKeyRequired`):
// the bitemporal write path cannot identify "the same logical row across
// versions" without one.
type PrimaryKeyRequiredError struct {
	Table string
}

func (e PrimaryKeyRequiredError) Error() string {
	return fmt.Sprintf("table %q must declare a primary key to be created as temporal", e.Table)
}

// NonTemporalTableError reports that a table is not known to the cache as
// temporal. No operation in this package returns it: operations against
// such a table take the plain-table path instead.
type NonTemporalTableError struct {
	Table string
}

func (e NonTemporalTableError) Error() string {
	return fmt.Sprintf("table %q is not temporal", e.Table)
}

// InvalidNameLengthError is returned when a generated or user-supplied
// identifier exceeds PostgreSQL's 63-byte NAMEDATALEN limit.
type InvalidNameLengthError struct {
	Name string
	Max  int
}

func (e InvalidNameLengthError) Error() string {
	return fmt.Sprintf("name %q exceeds maximum length of %d", e.Name, e.Max)
}
