// Package postgres implements store.Store directly on a pgx pool.
//
// Rows travel as JSON in both directions: selects wrap each row in
// row_to_json and inserts expand the JSON payload with
// json_populate_record, so the driver never needs per-table Go types.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/deppfellow/carpool/internal/database"
	"github.com/deppfellow/carpool/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ store.Store = (*Store)(nil)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store is a store.Store backed by PostgreSQL.
type Store struct {
	db *database.Database
}

// New wraps an open database.
func New(db *database.Database) *Store {
	return &Store{db: db}
}

func (s *Store) pool() *pgxpool.Pool {
	return s.db.Pool
}

func (s *Store) Select(ctx context.Context, table string, q store.Query) ([]json.RawMessage, error) {
	sql, args, err := buildSelect(table, q)
	if err != nil {
		return nil, store.NewError(store.OpSelect, table, err)
	}

	rows, err := s.pool().Query(ctx, sql, args...)
	if err != nil {
		return nil, convertError(store.OpSelect, table, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (json.RawMessage, error) {
		var raw []byte
		if err := row.Scan(&raw); err != nil {
			return nil, err
		}
		return json.RawMessage(raw), nil
	})
	if err != nil {
		return nil, convertError(store.OpSelect, table, err)
	}

	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, table string, row any) (json.RawMessage, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, store.NewError(store.OpInsert, table, err)
	}

	sql, err := buildInsert(table, payload)
	if err != nil {
		return nil, store.NewError(store.OpInsert, table, err)
	}

	var raw []byte
	if err := s.pool().QueryRow(ctx, sql, string(payload)).Scan(&raw); err != nil {
		return nil, convertError(store.OpInsert, table, err)
	}
	return json.RawMessage(raw), nil
}

func (s *Store) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	if err := store.RequireFilters(table, filters); err != nil {
		return err
	}

	sql, args, err := buildDelete(table, filters)
	if err != nil {
		return store.NewError(store.OpDelete, table, err)
	}

	if _, err := s.pool().Exec(ctx, sql, args...); err != nil {
		return convertError(store.OpDelete, table, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool().Ping(ctx); err != nil {
		return convertError(store.OpPing, "", err)
	}
	return nil
}

func (s *Store) Close() {
	_ = s.db.Close()
}

// convertError keeps the server's message and SQLSTATE for clients and
// logs.
func convertError(op store.Op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &store.Error{
			Op:      op,
			Table:   table,
			Message: pgErr.Message,
			Code:    pgErr.Code,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
			Err:     err,
		}
	}
	return store.NewError(op, table, err)
}

func quote(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

// where renders "WHERE a = $1 AND b = $2" starting at placeholder 1.
func where(filters []store.Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		column, err := quote(f.Column)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, i+1))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func buildSelect(table string, q store.Query) (string, []any, error) {
	name, err := quote(table)
	if err != nil {
		return "", nil, err
	}

	clause, args, err := where(q.Filters)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT row_to_json(t.*) FROM %s AS t%s", name, clause)

	if len(q.Order) > 0 {
		terms := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			column, err := quote(o.Column)
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, column+" "+strings.ToUpper(o.Direction()))
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}

	return sb.String(), args, nil
}

// buildInsert lists only the columns present in payload so that column
// defaults such as the id sequence still apply.
func buildInsert(table string, payload []byte) (string, error) {
	name, err := quote(table)
	if err != nil {
		return "", err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", fmt.Errorf("row must encode to a JSON object: %w", err)
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("row has no columns")
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	columns := make([]string, 0, len(keys))
	for _, key := range keys {
		column, err := quote(key)
		if err != nil {
			return "", err
		}
		columns = append(columns, column)
	}
	list := strings.Join(columns, ", ")

	return fmt.Sprintf(
		"INSERT INTO %[1]s (%[2]s) SELECT %[2]s FROM json_populate_record(NULL::%[1]s, $1::json) RETURNING row_to_json(%[1]s.*)",
		name, list,
	), nil
}

func buildDelete(table string, filters []store.Filter) (string, []any, error) {
	name, err := quote(table)
	if err != nil {
		return "", nil, err
	}

	clause, args, err := where(filters)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + name + clause, args, nil
}
