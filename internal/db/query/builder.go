// Package query builds parameterized SQL for the configured dialect.
// Values are always bound as arguments, never spliced into the SQL text.
package query

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

// Where is a set of column = value conditions joined with AND.
type Where map[string]interface{}

// Builder produces SQL strings and their bound arguments.
type Builder struct {
	dialect goqu.DialectWrapper
}

// New returns a builder for dialect ("sqlite3" or "mysql").
func New(dialect string) *Builder {
	return &Builder{dialect: goqu.Dialect(dialect)}
}

// Add is an UPDATE value that adds delta to column in place.
func Add(column string, delta int) interface{} {
	return goqu.L("? + ?", goqu.I(column), delta)
}

// GreaterThan is a Where value matching rows whose column exceeds v.
func GreaterThan(v interface{}) interface{} {
	return goqu.Op{"gt": v}
}

// Select builds a SELECT on table. Empty columns selects every column, an
// empty orderBy leaves ordering to the database and a zero limit means no limit.
func (b *Builder) Select(table string, columns []string, where Where, orderBy string, limit uint) (string, []interface{}, error) {
	ds := b.dialect.From(table).Prepared(true)
	if len(columns) > 0 {
		cols := make([]interface{}, len(columns))
		for i, c := range columns {
			cols[i] = c
		}
		ds = ds.Select(cols...)
	}
	if len(where) > 0 {
		ds = ds.Where(goqu.Ex(where))
	}
	if orderBy != "" {
		ds = ds.Order(goqu.I(orderBy).Asc())
	}

	sql, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select on %s: %w", table, err)
	}
	if limit > 0 {
		sql = fmt.Sprintf("%s LIMIT %d", sql, limit)
	}
	return sql, args, nil
}

// Insert builds an INSERT of a single row.
func (b *Builder) Insert(table string, values map[string]interface{}) (string, []interface{}, error) {
	sql, args, err := b.dialect.Insert(table).Prepared(true).Rows(goqu.Record(values)).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert on %s: %w", table, err)
	}
	return sql, args, nil
}

// Update builds an UPDATE setting values on the rows matching where.
func (b *Builder) Update(table string, values map[string]interface{}, where Where) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, fmt.Errorf("build update on %s: missing where clause", table)
	}
	sql, args, err := b.dialect.Update(table).Prepared(true).Set(goqu.Record(values)).Where(goqu.Ex(where)).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update on %s: %w", table, err)
	}
	return sql, args, nil
}

// Delete builds a DELETE of the rows matching where.
func (b *Builder) Delete(table string, where Where) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, fmt.Errorf("build delete on %s: missing where clause", table)
	}
	sql, args, err := b.dialect.Delete(table).Prepared(true).Where(goqu.Ex(where)).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build delete on %s: %w", table, err)
	}
	return sql, args, nil
}
