package dao

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"

	"gorm.io/gorm"
)

var columnPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Criteria selects rows. Fields maps a column name to either a scalar
// (translated to an equality test) or a slice of scalars (translated to an
// IN list). And/Or nest further groups.
type Criteria struct {
	Fields map[string]any
	And    []Criteria
	Or     []Criteria
}

// Where builds a single-field criteria.
func Where(field string, value any) Criteria {
	return Criteria{Fields: map[string]any{field: value}}
}

// ByID builds a primary key criteria.
func ByID(id uint) Criteria {
	return Where("id", id)
}

// IsZero reports whether the criteria constrains nothing at all.
func (c Criteria) IsZero() bool {
	return len(c.Fields) == 0 && len(c.And) == 0 && len(c.Or) == 0
}

// HasEmptySet reports whether any field anywhere in the criteria tree holds
// an empty slice. "IN ()" is undefined in the underlying SQL dialect, so
// callers short-circuit such criteria without issuing a query.
func (c Criteria) HasEmptySet() bool {
	for _, value := range c.Fields {
		if set, ok := asSet(value); ok && len(set) == 0 {
			return true
		}
	}
	for _, group := range c.And {
		if group.HasEmptySet() {
			return true
		}
	}
	for _, group := range c.Or {
		if group.HasEmptySet() {
			return true
		}
	}
	return false
}

// build translates the criteria into WHERE clauses on tx. Sub-groups are
// assembled on fresh sessions so gorm parenthesizes them as units.
func (c Criteria) build(tx *gorm.DB) (*gorm.DB, error) {
	for _, field := range sortedFields(c.Fields) {
		if !columnPattern.MatchString(field) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, field)
		}
		value := c.Fields[field]
		if _, ok := asSet(value); ok {
			tx = tx.Where(field+" IN ?", value)
		} else {
			tx = tx.Where(field+" = ?", value)
		}
	}

	for _, group := range c.And {
		sub, err := group.build(tx.Session(&gorm.Session{NewDB: true}))
		if err != nil {
			return nil, err
		}
		tx = tx.Where(sub)
	}

	for _, group := range c.Or {
		sub, err := group.build(tx.Session(&gorm.Session{NewDB: true}))
		if err != nil {
			return nil, err
		}
		tx = tx.Or(sub)
	}

	return tx, nil
}

func asSet(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	set := make([]any, rv.Len())
	for i := range set {
		set[i] = rv.Index(i).Interface()
	}
	return set, true
}

func sortedFields(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
