package postgres

import (
	"errors"
	"testing"

	"github.com/deppfellow/carpool/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	t.Run("ordered scan", func(t *testing.T) {
		sql, args, err := buildSelect("commutes", store.Query{
			Order: []store.Order{store.Desc("date")},
		})
		require.NoError(t, err)
		assert.Equal(t, `SELECT row_to_json(t.*) FROM "commutes" AS t ORDER BY "date" DESC`, sql)
		assert.Empty(t, args)
	})

	t.Run("filters and multiple orders", func(t *testing.T) {
		sql, args, err := buildSelect("cars", store.Query{
			Filters: []store.Filter{store.Eq("owner_id", int64(1)), store.Eq("name", "Civic")},
			Order:   []store.Order{store.Asc("id"), store.Desc("name")},
		})
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT row_to_json(t.*) FROM "cars" AS t WHERE "owner_id" = $1 AND "name" = $2 ORDER BY "id" ASC, "name" DESC`,
			sql)
		assert.Equal(t, []any{int64(1), "Civic"}, args)
	})

	t.Run("rejects unsafe identifiers", func(t *testing.T) {
		_, _, err := buildSelect(`cars"; drop table cars; --`, store.Query{})
		assert.Error(t, err)

		_, _, err = buildSelect("cars", store.Query{Order: []store.Order{store.Asc("Id")}})
		assert.Error(t, err)
	})
}

func TestBuildInsert(t *testing.T) {
	sql, err := buildInsert("cars", []byte(`{"roundtrip_cost":"12.5","name":"Civic","owner_id":1}`))
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "cars" ("name", "owner_id", "roundtrip_cost") SELECT "name", "owner_id", "roundtrip_cost" FROM json_populate_record(NULL::"cars", $1::json) RETURNING row_to_json("cars".*)`,
		sql)

	_, err = buildInsert("cars", []byte(`{}`))
	assert.Error(t, err)

	_, err = buildInsert("cars", []byte(`[1,2]`))
	assert.Error(t, err)
}

func TestBuildDelete(t *testing.T) {
	sql, args, err := buildDelete("persons", []store.Filter{store.Eq("id", int64(9))})
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "persons" WHERE "id" = $1`, sql)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestConvertError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "42P01",
		Message: `relation "cars" does not exist`,
		Hint:    "create it",
	}

	err := convertError(store.OpSelect, "cars", pgErr)
	storeErr, ok := store.AsError(err)
	require.True(t, ok)
	assert.Equal(t, `relation "cars" does not exist`, storeErr.Message)
	assert.Equal(t, "42P01", storeErr.Code)
	assert.Equal(t, "create it", storeErr.Hint)
	assert.ErrorIs(t, err, pgErr)

	err = convertError(store.OpPing, "", errors.New("dial tcp: connection refused"))
	storeErr, ok = store.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "dial tcp: connection refused", storeErr.Message)
}
