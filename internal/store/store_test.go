package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list cars: %w", NewError(OpSelect, "cars", cause))

	storeErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "connection refused", storeErr.Message)
	assert.Equal(t, "store select cars: connection refused", storeErr.Error())
	assert.ErrorIs(t, err, cause)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)

	pingErr := &Error{Op: OpPing, Message: "timeout"}
	assert.Equal(t, "store ping: timeout", pingErr.Error())
}

func TestRequireFilters(t *testing.T) {
	err := RequireFilters("cars", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFilters)

	assert.NoError(t, RequireFilters("cars", []Filter{Eq("id", 1)}))
}

func TestOrder(t *testing.T) {
	assert.Equal(t, "asc", Asc("id").Direction())
	assert.Equal(t, "desc", Desc("date").Direction())
	assert.Equal(t, Filter{Column: "id", Value: int64(3)}, Eq("id", int64(3)))
}
