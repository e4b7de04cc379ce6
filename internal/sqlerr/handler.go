package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/carpool/internal/errs"
	"github.com/deppfellow/carpool/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCode reports the Code for err, or Other when err carries no store
// code.
func ErrCode(err error) Code {
	if storeErr, ok := store.AsError(err); ok && storeErr.Code != "" {
		return MapCode(storeErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// ErrorCode builds a <DOMAIN>_<ACTION> label for logs, e.g. a unique
// violation on cars becomes CAR_ALREADY_EXISTS.
func ErrorCode(err error) string {
	table := ""
	if storeErr, ok := store.AsError(err); ok {
		table = storeErr.Table
	}
	return generateErrorCode(table, ErrCode(err))
}

func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidInput:
		action = "INVALID"
	case UndefinedTable, UndefinedColumn:
		action = "SCHEMA_MISMATCH"
	case ConnectionFailure:
		action = "UNAVAILABLE"
	case InsufficientPrivilege, Unauthorized:
		action = "FORBIDDEN"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// HandleError converts an error returned by a repository into the
// HTTPError sent to the client.
//
//   - *errs.HTTPError is returned unchanged.
//   - Store failures become a 500 carrying the store message verbatim.
//   - Anything else becomes a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if storeErr, ok := store.AsError(err); ok {
		return errs.NewStoreError(storeErr.Message)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.NewStoreError(pgErr.Message)
	}

	return errs.NewInternalServerError()
}
