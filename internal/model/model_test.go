package model

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestCarRow_ToAPI(t *testing.T) {
	var row CarRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Civic","owner_id":1,"roundtrip_cost":"12.50"}`), &row))

	body, err := json.Marshal(row.ToAPI())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Civic","ownerId":1,"roundtripCost":12.5}`, string(body))
}

func TestCarRow_NumericCost(t *testing.T) {
	var row CarRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"name":"Golf","owner_id":3,"roundtrip_cost":7.25}`), &row))
	require.NotNil(t, row.ToAPI().RoundtripCost)
	assert.Equal(t, 7.25, *row.ToAPI().RoundtripCost)
}

func TestCarRow_NullCost(t *testing.T) {
	for _, raw := range []string{
		`{"id":3,"name":"Polo","owner_id":1,"roundtrip_cost":null}`,
		`{"id":3,"name":"Polo","owner_id":1}`,
	} {
		var row CarRow
		require.NoError(t, json.Unmarshal([]byte(raw), &row))
		assert.False(t, row.RoundtripCost.Valid)

		body, err := json.Marshal(row.ToAPI())
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":3,"name":"Polo","ownerId":1,"roundtripCost":null}`, string(body))
	}
}

func TestCreateCarRequest(t *testing.T) {
	t.Run("string cost", func(t *testing.T) {
		var req CreateCarRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Civic","ownerId":1,"roundtripCost":"12.50"}`), &req))
		require.NoError(t, req.Validate())

		row := NewCarRow(&req)
		assert.Equal(t, int64(1), row.OwnerID)
		assert.True(t, row.RoundtripCost.Valid)
		assert.True(t, row.RoundtripCost.Decimal.Equal(decimal.RequireFromString("12.5")))

		body, err := json.Marshal(row)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Civic","owner_id":1,"roundtrip_cost":"12.5"}`, string(body))
	})

	t.Run("missing fields", func(t *testing.T) {
		req := CreateCarRequest{}
		assert.ElementsMatch(t, []string{"name", "ownerId", "roundtripCost"}, fieldsOf(t, req.Validate()))
	})

	t.Run("malformed cost", func(t *testing.T) {
		var req CreateCarRequest
		assert.Error(t, json.Unmarshal([]byte(`{"name":"Civic","ownerId":1,"roundtripCost":"cheap"}`), &req))
	})
}

func TestPerson(t *testing.T) {
	req := CreatePersonRequest{Name: "Alice"}
	require.NoError(t, req.Validate())

	body, err := json.Marshal(NewPersonRow(&req))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice"}`, string(body))

	assert.Equal(t, Person{ID: 4, Name: "Alice"}, PersonRow{ID: 4, Name: "Alice"}.ToAPI())

	t.Run("extra columns pass through", func(t *testing.T) {
		var row PersonRow
		require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"Alice","created_at":"2024-05-10T08:00:00+00:00","nickname":null}`), &row))
		assert.Equal(t, int64(4), row.ID)
		assert.Equal(t, "Alice", row.Name)
		assert.Len(t, row.Extra, 2)

		body, err := json.Marshal(row.ToAPI())
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":4,"name":"Alice","created_at":"2024-05-10T08:00:00+00:00","nickname":null}`, string(body))
	})

	t.Run("known columns only", func(t *testing.T) {
		var row PersonRow
		require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"Bob"}`), &row))
		assert.Nil(t, row.Extra)
	})

	empty := CreatePersonRequest{}
	assert.Equal(t, []string{"name"}, fieldsOf(t, empty.Validate()))
}

func TestCommute(t *testing.T) {
	t.Run("row reshaping", func(t *testing.T) {
		var row CommuteRow
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": 3, "date": "2024-05-10", "trip_type": "roundtrip",
			"selected_cars": [1], "selected_persons": [1, 2], "drivers": [1],
			"price_per_person": "6.25"
		}`), &row))

		body, err := json.Marshal(row.ToAPI())
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"id": 3, "date": "2024-05-10", "tripType": "roundtrip",
			"selectedCars": [1], "selectedPersons": [1, 2], "drivers": [1],
			"pricePerPerson": 6.25
		}`, string(body))
	})

	t.Run("null price", func(t *testing.T) {
		var row CommuteRow
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": 4, "date": "2024-05-11", "trip_type": "oneway",
			"selected_cars": [], "selected_persons": [], "drivers": [],
			"price_per_person": null
		}`), &row))
		assert.Nil(t, row.ToAPI().PricePerPerson)
	})

	t.Run("valid request", func(t *testing.T) {
		var req CreateCommuteRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"date": "2024-05-10", "tripType": "oneway",
			"selectedCars": [1], "selectedPersons": [1, 2], "drivers": [],
			"pricePerPerson": 6.25
		}`), &req))
		require.NoError(t, req.Validate())

		body, err := json.Marshal(NewCommuteRow(&req))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"date": "2024-05-10", "trip_type": "oneway",
			"selected_cars": [1], "selected_persons": [1, 2], "drivers": [],
			"price_per_person": "6.25"
		}`, string(body))
	})

	t.Run("invalid request", func(t *testing.T) {
		price := decimal.NewFromInt(5)
		req := CreateCommuteRequest{
			Date:            "10/05/2024",
			SelectedCars:    []int64{0},
			SelectedPersons: []int64{1},
			PricePerPerson:  &price,
		}
		assert.ElementsMatch(t,
			[]string{"date", "tripType", "selectedCars[0]", "drivers"},
			fieldsOf(t, req.Validate()))
	})
}
