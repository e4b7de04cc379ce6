// Package sqlerr classifies errors reported by the table store.
//
// Store errors carry a SQLSTATE (from Postgres directly or relayed by
// PostgREST) or a PostgREST PGRST code. Classification is used for logs
// and telemetry; clients always receive the store message unchanged.
package sqlerr

import "strings"

// Code is a coarse category of store failure.
type Code string

const (
	Other                 Code = "other"
	UniqueViolation       Code = "unique_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	NotNullViolation      Code = "not_null_violation"
	CheckViolation        Code = "check_violation"
	InvalidInput          Code = "invalid_input"
	UndefinedTable        Code = "undefined_table"
	UndefinedColumn       Code = "undefined_column"
	InsufficientPrivilege Code = "insufficient_privilege"
	ConnectionFailure     Code = "connection_failure"
	NotSingleRow          Code = "not_single_row"
	Unauthorized          Code = "unauthorized"
)

var sqlStates = map[string]Code{
	"23505":    UniqueViolation,
	"23503":    ForeignKeyViolation,
	"23502":    NotNullViolation,
	"23514":    CheckViolation,
	"22P02":    InvalidInput,
	"22007":    InvalidInput,
	"22008":    InvalidInput,
	"42P01":    UndefinedTable,
	"42703":    UndefinedColumn,
	"42501":    InsufficientPrivilege,
	"PGRST116": NotSingleRow,
	"PGRST204": UndefinedColumn,
	"PGRST205": UndefinedTable,
	"PGRST301": Unauthorized,
	"PGRST302": Unauthorized,
}

// MapCode maps a SQLSTATE or PGRST code to a Code.
func MapCode(code string) Code {
	if c, ok := sqlStates[code]; ok {
		return c
	}

	// Class 08 is connection exceptions; PGRST00x are PostgREST's own
	// connection errors.
	if strings.HasPrefix(code, "08") || strings.HasPrefix(code, "PGRST00") {
		return ConnectionFailure
	}

	return Other
}
