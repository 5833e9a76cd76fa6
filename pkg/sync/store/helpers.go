package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableDescriptor parameterizes upsertConditional over a concrete entity
// table. The seven LWW tables and the counter table differ only in key
// columns, the columns a winning write overwrites, and the dominance
// columns — so one generic function drives all eight of them. Each
// GORMStore Upsert* method (merge.go) passes its table's descriptor, and
// core.handlers binds each operation kind to one of those methods (see
// pkg/sync/core/handlers.go).
type TableDescriptor struct {
	// KeyColumns are the columns forming the table's conflict target
	// (always the composite (user_id, entity_id...) primary key).
	KeyColumns []string

	// MergeColumns are the columns a winning write overwrites: the
	// operation's payload columns plus the three merge-metadata columns
	// (last_modified, last_modified_client, seq_no).
	MergeColumns []string

	// DominanceColumns, compared pairwise in the order given, determine
	// whether an incoming row dominates the stored one. For LWW tables
	// this is (last_modified, last_modified_client); for the counter
	// table it is (cl_count).
	DominanceColumns []string
}

// dominancePredicate builds the ON CONFLICT ... WHERE fragment that makes
// the update conditional: the stored row's dominance columns, qualified
// with the target table's name (an unqualified name is ambiguous with the
// "excluded" pseudo-table on Postgres), must be strictly less than the
// incoming row's, read via the "excluded" pseudo-table.
func dominancePredicate(table string, cols []string) clause.Expression {
	existing := make([]string, len(cols))
	incoming := make([]string, len(cols))
	for i, c := range cols {
		existing[i] = table + "." + c
		incoming[i] = "excluded." + c
	}
	sql := "(" + strings.Join(existing, ", ") + ") < (" + strings.Join(incoming, ", ") + ")"
	return clause.Expr{SQL: sql}
}

// upsertConditional inserts row, or overwrites desc.MergeColumns in place
// if the existing row's dominance columns are dominated by the incoming
// ones. It is the single primitive behind both the LWW-register merge and
// the counter-backed-set merge; the two differ only in which columns
// participate in DominanceColumns.
//
// The predicate and the column overwrite happen in one INSERT ... ON
// CONFLICT statement, so a concurrent writer for the same key can never
// observe (or produce) a partially-applied update.
func upsertConditional[T any](ctx context.Context, db *gorm.DB, row T, desc TableDescriptor) error {
	table := any(row).(interface{ TableName() string }).TableName()
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: conflictColumns(desc.KeyColumns),
		DoUpdates: clause.AssignmentColumns(desc.MergeColumns),
		Where: clause.Where{
			Exprs: []clause.Expression{dominancePredicate(table, desc.DominanceColumns)},
		},
	}).Create(&row)
	return wrapStorageError(result.Error)
}

// insertOnce inserts row if no row exists for desc.KeyColumns, and is a
// silent no-op otherwise. It is the grow-only-set merge primitive: once a
// key exists its payload is immutable, so unlike upsertConditional there
// is nothing to overwrite and no dominance check.
func insertOnce[T any](ctx context.Context, db *gorm.DB, row T, keyColumns []string) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:  conflictColumns(keyColumns),
		DoNothing: true,
	}).Create(&row)
	return wrapStorageError(result.Error)
}

func conflictColumns(names []string) []clause.Column {
	cols := make([]clause.Column, len(names))
	for i, n := range names {
		cols[i] = clause.Column{Name: n}
	}
	return cols
}

// wrapStorageError normalizes any GORM/driver failure into
// models.ErrStorageError, preserving the underlying cause for %w/errors.Is
// callers that need the specific driver error.
func wrapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return &storageError{cause: err}
}
