// Package querysql compiles queryir queries to parameterized SQLite SQL over
// the particles and events tables of package store.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/ghep/internal/queryir"
)

// SQLCompiler compiles queries to parameterized SQL for SQLite.
//
// Every query has an ORDER BY with a deterministic tiebreaker, and values are
// always passed as parameters. Field names are interpolated, so Compile
// rejects any query that does not pass queryir.Validate.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a query to parameterized SQL.
//
// Select yields rows of (event_id, pos); Events yields rows of (id).
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q).Err(); err != nil {
		return "", nil, err
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	case queryir.Events:
		return c.compileEvents(query)
	case *queryir.Events:
		return c.compileEvents(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	var where string
	var params []any
	if q.Filter != nil {
		filterSQL, filterParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		where = " WHERE " + filterSQL
		params = filterParams
	}

	sql := "SELECT event_id, pos FROM particles" + where +
		" ORDER BY event_id ASC COLLATE BINARY, pos ASC"
	return sql, params, nil
}

// compileEvents intersects one event_id set per predicate, so each predicate
// may be satisfied by a different entry. Events come back in write order.
func (c *SQLCompiler) compileEvents(q queryir.Events) (string, []any, error) {
	parts := make([]string, 0, len(q.Having))
	var params []any
	for i, pred := range q.Having {
		predSQL, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, fmt.Errorf("compile having[%d]: %w", i, err)
		}
		parts = append(parts, "SELECT event_id FROM particles WHERE "+predSQL)
		params = append(params, predParams...)
	}

	sql := "SELECT id FROM events WHERE id IN (" + strings.Join(parts, " INTERSECT ") + ")" +
		" ORDER BY seq ASC, id ASC COLLATE BINARY"
	return sql, params, nil
}

// compilePredicate compiles a predicate to a WHERE clause fragment.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil
	case queryir.Equals:
		return fmt.Sprintf("%s = ?", pred.Field), []any{int64(pred.Value)}, nil
	case *queryir.Equals:
		return c.compilePredicate(*pred)
	case queryir.AtLeast:
		return fmt.Sprintf("%s >= ?", pred.Field), []any{pred.Value}, nil
	case *queryir.AtLeast:
		return c.compilePredicate(*pred)
	case queryir.AtMost:
		return fmt.Sprintf("%s <= ?", pred.Field), []any{pred.Value}, nil
	case *queryir.AtMost:
		return c.compilePredicate(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}
