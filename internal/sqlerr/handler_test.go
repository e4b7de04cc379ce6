package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/carpool/internal/errs"
	"github.com/deppfellow/carpool/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		code string
		want Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"22P02", InvalidInput},
		{"42P01", UndefinedTable},
		{"PGRST205", UndefinedTable},
		{"08006", ConnectionFailure},
		{"PGRST001", ConnectionFailure},
		{"XX000", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.code))
		})
	}
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("create car: %w", &store.Error{
		Op: store.OpInsert, Table: "cars", Code: "23505", Message: "duplicate key",
	})
	assert.Equal(t, UniqueViolation, ErrCode(err))
	assert.Equal(t, "CAR_ALREADY_EXISTS", ErrorCode(err))

	assert.Equal(t, "RECORD_ERROR", ErrorCode(errors.New("boom")))
	assert.Equal(t, NotNullViolation, ErrCode(&pgconn.PgError{Code: "23502"}))
}

func TestHandleError(t *testing.T) {
	t.Run("store message is passed through", func(t *testing.T) {
		err := HandleError(fmt.Errorf("list cars: %w", &store.Error{
			Op: store.OpSelect, Table: "cars", Message: `relation "public.cars" does not exist`,
		}))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, `relation "public.cars" does not exist`, httpErr.Message)
		assert.Empty(t, httpErr.Code)
	})

	t.Run("raw pg error", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23502", Message: "null value"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "null value", httpErr.Message)
	})

	t.Run("http errors are untouched", func(t *testing.T) {
		original := errs.NewBadRequestError("bad", nil, nil)
		assert.Same(t, original, HandleError(original))
	})

	t.Run("unknown errors are generic", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(errors.New("nil pointer")), &httpErr)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})
}
