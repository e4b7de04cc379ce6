// Package errs defines the error shapes returned to API clients.
//
// Every failed request is answered with a JSON object carrying at least
// an "error" message. Validation failures add a machine-readable "code"
// and per-field details:
//
//	{"error": "Validation failed", "code": "BAD_REQUEST",
//	 "errors": [{"field": "name", "error": "is required"}]}
//
// Store failures carry the store's own message and nothing else:
//
//	{"error": "relation \"cars\" does not exist"}
package errs

import "strings"

// FieldError represents a field-level validation error.
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "ownerId").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Status never leaves the process; it only tells the global error
// handler which status line to write.
type HTTPError struct {
	Code    string       `json:"code,omitempty"`
	Message string       `json:"error"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
