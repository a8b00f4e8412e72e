// SPDX-License-Identifier: Apache-2.0

package ddl

import (
	"context"
	"fmt"

	"github.com/bitempodb/bitempodb/pkg/db"
	"github.com/bitempodb/bitempodb/pkg/ident"
	"github.com/bitempodb/bitempodb/pkg/schema"
	"github.com/bitempodb/bitempodb/pkg/schemarouter"
	"github.com/bitempodb/bitempodb/pkg/temporalcache"
)

var _ Operation = (*OpRenameTable)(nil)

// OpRenameTable is rename_table(from, to): rename the table and its
// primary-key sequence in both the current and history schemas, then the
// view, keeping the cache's del!+add! pairing atomic with the rest of the
// transaction.
type OpRenameTable struct {
	From string `json:"from"`
	To   string `json:"to"`

	pk string
}

func (o *OpRenameTable) OpName() string { return fmt.Sprintf("rename_table %q to %q", o.From, o.To) }

func (o *OpRenameTable) Validate(s *schema.Schema) error {
	if err := ValidateName(o.To); err != nil {
		return err
	}
	t := s.GetTable(o.From)
	if t == nil {
		return TableDoesNotExistError{Name: o.From}
	}
	if s.GetTable(o.To) != nil {
		return TableAlreadyExistsError{Name: o.To}
	}
	if len(t.PrimaryKey) > 0 {
		o.pk = t.PrimaryKey[0]
	}
	return s.RenameTable(o.From, o.To)
}

func (o *OpRenameTable) Execute(ctx context.Context, tx db.DB, cache *temporalcache.Cache, router *schemarouter.Router) error {
	temporal, err := cache.IsTemporal(ctx, o.From)
	if err != nil {
		return err
	}

	if !temporal {
		_, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
			ident.Quote(o.From), ident.Quote(o.To)))
		return err
	}

	for _, s := range []string{"current", "history"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
			ident.QuoteQualified(s, o.From), ident.Quote(o.To))); err != nil {
			return fmt.Errorf("renaming table in schema %q: %w", s, err)
		}

		if o.pk != "" {
			oldSeq := fmt.Sprintf("%s_%s_seq", o.From, o.pk)
			newSeq := fmt.Sprintf("%s_%s_seq", o.To, o.pk)
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER SEQUENCE IF EXISTS %s RENAME TO %s",
				ident.QuoteQualified(s, oldSeq), ident.Quote(newSeq))); err != nil {
				return fmt.Errorf("renaming sequence in schema %q: %w", s, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER VIEW %s RENAME TO %s",
		ident.QuoteQualified("public", o.From), ident.Quote(o.To))); err != nil {
		return fmt.Errorf("renaming view: %w", err)
	}

	cache.Rename(o.From, o.To)
	return nil
}
