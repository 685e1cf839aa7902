package dao

import (
	"context"

	"gorm.io/gorm"
)

// Hooks isolate entity-specific normalization from the generic CRUD
// plumbing. MapRow post-processes each row after a read; the sanitizers
// pre-process data before it is written.
type Hooks[T any] struct {
	MapRow         func(*T)
	SanitizeInsert func(*T)
	SanitizeUpdate func(map[string]any)
}

// Base is the shared foundation for concrete entity DAOs. Every operation
// delegates to the generic Table, applying the configured hooks.
type Base[T any] struct {
	table *Table[T]
	hooks Hooks[T]
}

// NewBase builds a Base over the supplied database handle.
func NewBase[T any](db *gorm.DB, hooks Hooks[T]) *Base[T] {
	return &Base[T]{table: NewTable[T](db), hooks: hooks}
}

// Table exposes the underlying generic table for operations the Base surface
// does not cover.
func (b *Base[T]) Table() *Table[T] {
	return b.table
}

// FindByID looks up a single row by primary key, nil when absent.
func (b *Base[T]) FindByID(ctx context.Context, id uint, opts ...QueryOption) (*T, error) {
	row, err := b.table.FindByID(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	b.mapRow(row)
	return row, nil
}

// FindOneFor looks up a single row by an arbitrary field, nil when absent.
func (b *Base[T]) FindOneFor(ctx context.Context, field string, value any, opts ...QueryOption) (*T, error) {
	row, err := b.table.FindOne(ctx, Where(field, value), opts...)
	if err != nil {
		return nil, err
	}
	b.mapRow(row)
	return row, nil
}

// FindAll returns every row.
func (b *Base[T]) FindAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	return b.mapRows(b.table.Find(ctx, Criteria{}, opts...))
}

// FindAllFor returns every row matching a single-field criteria.
func (b *Base[T]) FindAllFor(ctx context.Context, field string, value any, opts ...QueryOption) ([]T, error) {
	return b.mapRows(b.table.Find(ctx, Where(field, value), opts...))
}

// Count returns the number of rows matching the criteria.
func (b *Base[T]) Count(ctx context.Context, crit Criteria) (int64, error) {
	return b.table.Count(ctx, crit)
}

// Insert sanitizes and persists a record.
func (b *Base[T]) Insert(ctx context.Context, record *T) error {
	b.sanitizeInsert(record)
	if err := b.table.Insert(ctx, record); err != nil {
		return err
	}
	b.mapRow(record)
	return nil
}

// BatchInsert sanitizes and persists all records in one statement.
func (b *Base[T]) BatchInsert(ctx context.Context, records []T) ([]T, error) {
	for i := range records {
		b.sanitizeInsert(&records[i])
	}
	return b.mapRows(b.table.BatchInsert(ctx, records))
}

// Save sanitizes and upserts a record, keyed on the primary key or the
// declared conflict columns.
func (b *Base[T]) Save(ctx context.Context, record *T, conflictColumns ...string) error {
	b.sanitizeInsert(record)
	if err := b.table.Save(ctx, record, conflictColumns...); err != nil {
		return err
	}
	b.mapRow(record)
	return nil
}

// Update applies a sanitized partial update to every matching row.
func (b *Base[T]) Update(ctx context.Context, crit Criteria, fields map[string]any) ([]T, error) {
	b.sanitizeUpdate(fields)
	return b.mapRows(b.table.Update(ctx, crit, fields))
}

// UpdateByID applies a sanitized partial update to the identified row.
func (b *Base[T]) UpdateByID(ctx context.Context, id uint, fields map[string]any) (*T, error) {
	b.sanitizeUpdate(fields)
	row, err := b.table.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	b.mapRow(row)
	return row, nil
}

// RemoveByID deletes the identified row, returning it, or nil when absent.
func (b *Base[T]) RemoveByID(ctx context.Context, id uint) (*T, error) {
	row, err := b.table.DestroyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.mapRow(row)
	return row, nil
}

// RemoveAllFor deletes every row matching a single-field criteria and
// returns the removed rows.
func (b *Base[T]) RemoveAllFor(ctx context.Context, field string, value any) ([]T, error) {
	return b.mapRows(b.table.Destroy(ctx, Where(field, value)))
}

func (b *Base[T]) mapRow(row *T) {
	if row != nil && b.hooks.MapRow != nil {
		b.hooks.MapRow(row)
	}
}

func (b *Base[T]) mapRows(rows []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if b.hooks.MapRow != nil {
		for i := range rows {
			b.hooks.MapRow(&rows[i])
		}
	}
	return rows, nil
}

func (b *Base[T]) sanitizeInsert(record *T) {
	if record != nil && b.hooks.SanitizeInsert != nil {
		b.hooks.SanitizeInsert(record)
	}
}

func (b *Base[T]) sanitizeUpdate(fields map[string]any) {
	if fields != nil && b.hooks.SanitizeUpdate != nil {
		b.hooks.SanitizeUpdate(fields)
	}
}

// ReadOnly exposes the create/read subset of the DAO surface for row types
// that have no update or delete path.
type ReadOnly[T any] struct {
	table *Table[T]
}

// NewReadOnly builds a ReadOnly over the supplied database handle.
func NewReadOnly[T any](db *gorm.DB) *ReadOnly[T] {
	return &ReadOnly[T]{table: NewTable[T](db)}
}

// Find returns all rows matching the criteria.
func (r *ReadOnly[T]) Find(ctx context.Context, crit Criteria, opts ...QueryOption) ([]T, error) {
	return r.table.Find(ctx, crit, opts...)
}

// FindOne returns the first matching row, nil when absent.
func (r *ReadOnly[T]) FindOne(ctx context.Context, crit Criteria, opts ...QueryOption) (*T, error) {
	return r.table.FindOne(ctx, crit, opts...)
}

// Count returns the number of matching rows.
func (r *ReadOnly[T]) Count(ctx context.Context, crit Criteria) (int64, error) {
	return r.table.Count(ctx, crit)
}

// Insert persists a record.
func (r *ReadOnly[T]) Insert(ctx context.Context, record *T) error {
	return r.table.Insert(ctx, record)
}

// RegisterScript stores a named parametrized query on the underlying table.
func (r *ReadOnly[T]) RegisterScript(name, sqlText string) {
	r.table.RegisterScript(name, sqlText)
}

// Script runs a registered query with the supplied parameters.
func (r *ReadOnly[T]) Script(ctx context.Context, name string, params map[string]any) ([]T, error) {
	return r.table.Script(ctx, name, params)
}
