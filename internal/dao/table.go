package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "pantry/internal/log"
)

// CountUnknown is returned by Count when the database yields a non-numeric
// result. Callers treat it as a degraded signal, not an error.
const CountUnknown int64 = -1

var (
	// ErrScriptNotFound is returned when an undefined script name is invoked.
	ErrScriptNotFound = errors.New("dao: script not found")
	// ErrInvalidColumn is returned when a criteria field is not a legal column name.
	ErrInvalidColumn = errors.New("dao: invalid column name")
)

// QueryOption adjusts a query before execution.
type QueryOption func(*gorm.DB) *gorm.DB

// OrderBy appends an ORDER BY expression.
func OrderBy(expr string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(expr) }
}

// Limit caps the number of returned rows.
func Limit(n int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Limit(n) }
}

// Offset skips the first n rows.
func Offset(n int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Offset(n) }
}

// Preload eagerly loads the named association.
func Preload(association string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Preload(association) }
}

// Table is a typed, generic wrapper over the ORM for a single mapped type.
// It translates criteria into queries and hosts named parametrized scripts.
type Table[T any] struct {
	db      *gorm.DB
	scripts map[string]string
}

// NewTable builds a Table bound to the supplied database handle.
func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{db: db, scripts: map[string]string{}}
}

// Find returns all rows matching the criteria. Criteria holding an empty set
// for any field yield an empty result without touching the database.
func (t *Table[T]) Find(ctx context.Context, crit Criteria, opts ...QueryOption) ([]T, error) {
	if crit.HasEmptySet() {
		return []T{}, nil
	}

	tx, err := crit.build(t.db.WithContext(ctx).Model(new(T)))
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		tx = opt(tx)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// FindOne returns the first row matching the criteria, or nil when no row
// matches. Absence is not an error.
func (t *Table[T]) FindOne(ctx context.Context, crit Criteria, opts ...QueryOption) (*T, error) {
	rows, err := t.Find(ctx, crit, append(opts, Limit(1))...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindByID is a primary key lookup.
func (t *Table[T]) FindByID(ctx context.Context, id uint, opts ...QueryOption) (*T, error) {
	return t.FindOne(ctx, ByID(id), opts...)
}

// Count returns the number of matching rows, applying the same empty-set
// short-circuit as Find.
func (t *Table[T]) Count(ctx context.Context, crit Criteria) (int64, error) {
	if crit.HasEmptySet() {
		return 0, nil
	}

	tx, err := crit.build(t.db.WithContext(ctx).Model(new(T)))
	if err != nil {
		return 0, err
	}

	var result sql.NullInt64
	if err := tx.Select("COUNT(*)").Scan(&result).Error; err != nil {
		return 0, err
	}
	if !result.Valid {
		applog.Error(ctx, "count returned a non-numeric result", "type", fmt.Sprintf("%T", *new(T)))
		return CountUnknown, nil
	}
	return result.Int64, nil
}

// Insert persists the record and populates its generated identity.
func (t *Table[T]) Insert(ctx context.Context, record *T) error {
	return t.db.WithContext(ctx).Create(record).Error
}

// BatchInsert persists all records in one statement. An empty batch returns
// an empty slice without a query.
func (t *Table[T]) BatchInsert(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return []T{}, nil
	}
	if err := t.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies a partial update to every matching row and returns the
// updated rows. Empty-set criteria short-circuit to an empty result.
func (t *Table[T]) Update(ctx context.Context, crit Criteria, fields map[string]any) ([]T, error) {
	if crit.HasEmptySet() {
		return []T{}, nil
	}

	var rows []T
	tx, err := crit.build(t.db.WithContext(ctx).Model(&rows).Clauses(clause.Returning{}))
	if err != nil {
		return nil, err
	}
	if err := tx.Updates(fields).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// UpdateByID applies a partial update to the identified row, returning nil
// when no such row exists.
func (t *Table[T]) UpdateByID(ctx context.Context, id uint, fields map[string]any) (*T, error) {
	rows, err := t.Update(ctx, ByID(id), fields)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Destroy removes every matching row and returns the removed rows.
func (t *Table[T]) Destroy(ctx context.Context, crit Criteria) ([]T, error) {
	if crit.HasEmptySet() {
		return []T{}, nil
	}

	var rows []T
	tx, err := crit.build(t.db.WithContext(ctx).Clauses(clause.Returning{}))
	if err != nil {
		return nil, err
	}
	if err := tx.Delete(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// DestroyByID removes the identified row, returning nil when absent.
func (t *Table[T]) DestroyByID(ctx context.Context, id uint) (*T, error) {
	rows, err := t.Destroy(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Save upserts the record, keyed on the primary key or, when supplied, the
// declared conflict columns.
func (t *Table[T]) Save(ctx context.Context, record *T, conflictColumns ...string) error {
	if len(conflictColumns) == 0 {
		return t.db.WithContext(ctx).Save(record).Error
	}

	columns := make([]clause.Column, 0, len(conflictColumns))
	for _, name := range conflictColumns {
		if !columnPattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidColumn, name)
		}
		columns = append(columns, clause.Column{Name: name})
	}

	return t.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: columns, UpdateAll: true}).
		Create(record).Error
}

// RegisterScript stores a named parametrized query. Parameters are referenced
// in the SQL as @name placeholders.
func (t *Table[T]) RegisterScript(name, sqlText string) {
	t.scripts[name] = sqlText
}

// Script runs a previously registered query with the supplied parameter
// mapping, scanning the result into the table's row type.
func (t *Table[T]) Script(ctx context.Context, name string, params map[string]any) ([]T, error) {
	sqlText, ok := t.scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrScriptNotFound, name)
	}

	tx := t.db.WithContext(ctx)
	if len(params) > 0 {
		tx = tx.Raw(sqlText, params)
	} else {
		tx = tx.Raw(sqlText)
	}

	var rows []T
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}
