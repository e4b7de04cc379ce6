package store

import (
	"errors"
	"fmt"
)

// Op names a store operation in errors, logs and metrics.
type Op string

const (
	OpSelect Op = "select"
	OpInsert Op = "insert"
	OpDelete Op = "delete"
	OpPing   Op = "ping"
)

// Error is returned by drivers when the backing store rejects or fails an
// operation.
//
// Message is the store's own description of the failure and is what API
// clients get to see. Code holds the store's error code (SQLSTATE or a
// PostgREST PGRST code) when one is known.
type Error struct {
	Op      Op
	Table   string
	Message string
	Code    string
	Details string
	Hint    string

	// Status is the HTTP status returned by a REST store, 0 otherwise.
	Status int

	Err error
}

func (e *Error) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("store %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("store %s %s: %s", e.Op, e.Table, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoFilters is wrapped by Delete calls that would match every row.
var ErrNoFilters = errors.New("delete requires at least one filter")

// NewError wraps a driver or transport error. The error text becomes the
// client-visible message.
func NewError(op Op, table string, err error) *Error {
	return &Error{
		Op:      op,
		Table:   table,
		Message: err.Error(),
		Err:     err,
	}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

// RequireFilters guards Delete against unfiltered calls.
func RequireFilters(table string, filters []Filter) error {
	if len(filters) == 0 {
		return NewError(OpDelete, table, ErrNoFilters)
	}
	return nil
}
