package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation ID on requests and responses.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the Echo context key holding the correlation ID.
	RequestIDKey = "request_id"

	// maxRequestIDLength caps IDs accepted from callers.
	maxRequestIDLength = 128
)

// RequestID returns the middleware that gives every API call a
// correlation ID.
//
// Behavior:
//   - An X-Request-ID sent by the caller is reused when it is at most
//     128 bytes of printable ASCII.
//   - Anything else, including a missing header, is replaced by a new
//     UUID v4.
//   - The ID is stored under RequestIDKey and written back on the
//     response, so a failed carpool call can be matched to its log lines
//     and its New Relic transaction.
//
// It runs first in the chain. The context enhancer and the tracing
// middleware read the ID it stores.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// validRequestID reports whether id can be logged and echoed verbatim.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the correlation ID of the current request.
//
// It returns "" when RequestID has not run, as in handler unit tests that
// build a bare Echo context.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
