// SPDX-License-Identifier: Apache-2.0

package ddl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitempodb/bitempodb/pkg/ddl"
)

func TestValidateNameRejectsTooLong(t *testing.T) {
	t.Parallel()

	ok := strings.Repeat("a", ddl.MaxNameLength)
	assert.NoError(t, ddl.ValidateName(ok))

	tooLong := strings.Repeat("a", ddl.MaxNameLength+1)
	assert.ErrorAs(t, ddl.ValidateName(tooLong), &ddl.InvalidNameLengthError{})
}

func TestGenerateNameFitsWithinLimit(t *testing.T) {
	t.Parallel()

	name := ddl.GenerateName(strings.Repeat("a", 100))
	assert.LessOrEqual(t, len(name), ddl.MaxNameLength)
}

func TestGenerateNameIsUnique(t *testing.T) {
	t.Parallel()

	a := ddl.GenerateName("prefix")
	b := ddl.GenerateName("prefix")
	assert.NotEqual(t, a, b)
}
