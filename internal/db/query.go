package db

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// queryBuilder accumulates positional arguments, WHERE conditions and SET
// assignments for statements assembled at runtime.
type queryBuilder struct {
	args  []any
	conds []string
	sets  []string
}

// arg appends v and returns its placeholder.
func (q *queryBuilder) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *queryBuilder) where(cond string) {
	q.conds = append(q.conds, cond)
}

func (q *queryBuilder) equal(column string, v any) {
	q.where(column + " = " + q.arg(v))
}

// contains adds a case-insensitive substring match.
func (q *queryBuilder) contains(column, s string) {
	q.where(column + " ILIKE " + q.arg("%"+escapeLike(s)+"%"))
}

func (q *queryBuilder) set(column string, v any) {
	q.sets = append(q.sets, column+" = "+q.arg(v))
}

// setRaw assigns a SQL expression without an argument.
func (q *queryBuilder) setRaw(column, expr string) {
	q.sets = append(q.sets, column+" = "+expr)
}

func (q *queryBuilder) whereSQL() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *queryBuilder) setSQL() string {
	return strings.Join(q.sets, ", ")
}

// pageSQL appends LIMIT/OFFSET placeholders.
func (q *queryBuilder) pageSQL(limit, offset int) string {
	return " LIMIT " + q.arg(limit) + " OFFSET " + q.arg(offset)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// collectRows scans every row with scan and closes rows.
func collectRows[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}
