package memstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/deppfellow/carpool/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

func decode(t *testing.T, raw []json.RawMessage) []row {
	t.Helper()

	rows := make([]row, 0, len(raw))
	for _, r := range raw {
		var out row
		require.NoError(t, json.Unmarshal(r, &out))
		rows = append(rows, out)
	}
	return rows
}

func TestStore_InsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := New("persons")

	first, err := s.Insert(ctx, "persons", row{Name: "Alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Alice"}`, string(first))

	second, err := s.Insert(ctx, "persons", row{Name: "Bob"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name":"Bob"}`, string(second))
}

func TestStore_SelectFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := New("commutes")

	for _, date := range []string{"2024-03-01", "2024-05-10", "2024-01-15"} {
		_, err := s.Insert(ctx, "commutes", row{Name: "trip", Date: date})
		require.NoError(t, err)
	}

	raw, err := s.Select(ctx, "commutes", store.Query{Order: []store.Order{store.Desc("date")}})
	require.NoError(t, err)

	rows := decode(t, raw)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-05-10", rows[0].Date)
	assert.Equal(t, "2024-03-01", rows[1].Date)
	assert.Equal(t, "2024-01-15", rows[2].Date)

	raw, err = s.Select(ctx, "commutes", store.Query{
		Filters: []store.Filter{store.Eq("id", int64(3))},
	})
	require.NoError(t, err)
	rows = decode(t, raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-15", rows[0].Date)
}

func TestStore_NumericOrdering(t *testing.T) {
	ctx := context.Background()
	s := New("cars")

	for i := 0; i < 11; i++ {
		_, err := s.Insert(ctx, "cars", row{Name: "car"})
		require.NoError(t, err)
	}

	raw, err := s.Select(ctx, "cars", store.Query{Order: []store.Order{store.Asc("id")}})
	require.NoError(t, err)

	rows := decode(t, raw)
	require.Len(t, rows, 11)
	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.ID)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New("cars")

	_, err := s.Insert(ctx, "cars", row{Name: "Civic"})
	require.NoError(t, err)

	t.Run("missing id is not an error", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "cars", store.Eq("id", int64(42))))

		raw, err := s.Select(ctx, "cars", store.Query{})
		require.NoError(t, err)
		assert.Len(t, raw, 1)
	})

	t.Run("matching id removes the row", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "cars", store.Eq("id", int64(1))))

		raw, err := s.Select(ctx, "cars", store.Query{})
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("unfiltered delete is rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Delete(ctx, "cars"), store.ErrNoFilters)
	})
}

func TestStore_UnknownTable(t *testing.T) {
	s := New("cars")

	_, err := s.Select(context.Background(), "trucks", store.Query{})
	require.Error(t, err)

	storeErr, ok := store.AsError(err)
	require.True(t, ok)
	assert.Equal(t, `relation "trucks" does not exist`, storeErr.Message)
	assert.Equal(t, "42P01", storeErr.Code)
}
