// Package memstore keeps tables in process memory.
//
// It mirrors the behavior of the hosted store closely enough for tests
// and local demos: ids are assigned from a per-table sequence starting
// at 1, unknown tables are rejected, and deletes that match nothing
// succeed.
package memstore

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/deppfellow/carpool/internal/store"
)

var _ store.Store = (*Store)(nil)

type table struct {
	rows   []map[string]any
	nextID int64
}

// Store is a mutex-guarded set of named tables.
type Store struct {
	mu     sync.Mutex
	tables map[string]*table
}

// New creates a store that knows the given tables.
func New(tables ...string) *Store {
	s := &Store{tables: make(map[string]*table, len(tables))}
	for _, name := range tables {
		s.tables[name] = &table{nextID: 1}
	}
	return s
}

func (s *Store) table(op store.Op, name string) (*table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, &store.Error{
			Op:      op,
			Table:   name,
			Message: fmt.Sprintf("relation %q does not exist", name),
			Code:    "42P01",
		}
	}
	return t, nil
}

// Select returns copies of the matching rows.
func (s *Store) Select(_ context.Context, name string, q store.Query) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(store.OpSelect, name)
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]any, 0, len(t.rows))
	for _, row := range t.rows {
		if matches(row, q.Filters) {
			matched = append(matched, row)
		}
	}

	slices.SortStableFunc(matched, func(a, b map[string]any) int {
		for _, o := range q.Order {
			c := compare(a[o.Column], b[o.Column])
			if o.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	out := make([]json.RawMessage, 0, len(matched))
	for _, row := range matched {
		raw, err := json.Marshal(row)
		if err != nil {
			return nil, store.NewError(store.OpSelect, name, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// Insert stores row, assigning an id when the row has none.
func (s *Store) Insert(_ context.Context, name string, row any) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(store.OpInsert, name)
	if err != nil {
		return nil, err
	}

	record, err := toRecord(row)
	if err != nil {
		return nil, store.NewError(store.OpInsert, name, err)
	}

	if id, ok := record["id"]; !ok || id == nil {
		record["id"] = json.Number(fmt.Sprint(t.nextID))
		t.nextID++
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, store.NewError(store.OpInsert, name, err)
	}

	t.rows = append(t.rows, record)
	return raw, nil
}

// Delete drops every matching row.
func (s *Store) Delete(_ context.Context, name string, filters ...store.Filter) error {
	if err := store.RequireFilters(name, filters); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table(store.OpDelete, name)
	if err != nil {
		return err
	}

	t.rows = slices.DeleteFunc(t.rows, func(row map[string]any) bool {
		return matches(row, filters)
	})
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() {}

// toRecord round-trips row through JSON so that stored values have the
// same shape a remote store would return.
func toRecord(row any) (map[string]any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("row must encode to a JSON object: %w", err)
	}
	return record, nil
}

func matches(row map[string]any, filters []store.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(row[f.Column]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

// compare orders numbers numerically and everything else by its text.
func compare(a, b any) int {
	an, aok := a.(json.Number)
	bn, bok := b.(json.Number)
	if aok && bok {
		af, aerr := an.Float64()
		bf, berr := bn.Float64()
		if aerr == nil && berr == nil {
			return cmp.Compare(af, bf)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
