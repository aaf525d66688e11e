// ABOUTME: Safe SQL statement builder for the SQLite feed store
// ABOUTME: Enforces parameterization so feed URLs and titles never reach raw SQL

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Table and column name validation - only alphanumeric, underscore allowed
var safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Limits on stored values. Feed documents can be large but not unbounded.
const (
	maxURLLength  = 2048
	maxBlobLength = 8 * 1024 * 1024
)

// QueryBuilder assembles parameterized statements for the feed store.
// Identifiers are validated; values always travel as placeholders.
type QueryBuilder struct {
	query  strings.Builder
	params []interface{}
	err    error
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0, 8),
	}
}

// validateName validates table/column names to prevent SQL injection
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	return nil
}

func (qb *QueryBuilder) fail(err error) *QueryBuilder {
	if qb.err == nil {
		qb.err = err
	}
	return qb
}

// Select begins a SELECT over the given columns
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if err := validateName(col); err != nil {
			return qb.fail(err)
		}
	}
	qb.query.WriteString("SELECT ")
	qb.query.WriteString(strings.Join(columns, ", "))
	qb.query.WriteString(" ")
	return qb
}

// From adds the FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}
	qb.query.WriteString("FROM ")
	qb.query.WriteString(table)
	qb.query.WriteString(" ")
	return qb
}

// Where adds an equality condition with a bound parameter
func (qb *QueryBuilder) Where(column string, value interface{}) *QueryBuilder {
	if err := validateName(column); err != nil {
		return qb.fail(err)
	}
	qb.query.WriteString("WHERE ")
	qb.query.WriteString(column)
	qb.query.WriteString(" = ? ")
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an upsert over the given column/value pairs
func (qb *QueryBuilder) InsertOrReplace(table string, columns []string, values []interface{}) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}
	if len(columns) == 0 || len(columns) != len(values) {
		return qb.fail(errors.New("column and value counts must match and be non-empty"))
	}
	for _, col := range columns {
		if err := validateName(col); err != nil {
			return qb.fail(err)
		}
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	qb.query.WriteString("INSERT OR REPLACE INTO ")
	qb.query.WriteString(table)
	qb.query.WriteString(" (")
	qb.query.WriteString(strings.Join(columns, ", "))
	qb.query.WriteString(") VALUES (")
	qb.query.WriteString(strings.Join(placeholders, ", "))
	qb.query.WriteString(") ")
	qb.params = append(qb.params, values...)
	return qb
}

// DeleteFrom builds a DELETE statement; combine with Where
func (qb *QueryBuilder) DeleteFrom(table string) *QueryBuilder {
	if err := validateName(table); err != nil {
		return qb.fail(err)
	}
	qb.query.WriteString("DELETE FROM ")
	qb.query.WriteString(table)
	qb.query.WriteString(" ")
	return qb
}

// Build returns the assembled SQL and its parameters
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	sql := strings.TrimSpace(qb.query.String())
	if sql == "" {
		return "", nil, errors.New("empty query")
	}
	return sql, qb.params, nil
}
