// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// TableDoesNotExistError is returned when an operation references a
// logical table that the schema has no record of (or that has been
// dropped).
type TableDoesNotExistError struct {
	Name string
}

func (e TableDoesNotExistError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Name)
}

// TableAlreadyExistsError is returned when an operation would create a
// logical table name that is already in use.
type TableAlreadyExistsError struct {
	Name string
}

func (e TableAlreadyExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Name)
}
