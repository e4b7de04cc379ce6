package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "caller id is reused", incoming: "carpool-7f3a", keep: true},
		{name: "missing id is generated", incoming: ""},
		{name: "id with spaces is replaced", incoming: "two words"},
		{name: "id with control characters is replaced", incoming: "abc\x01def"},
		{name: "oversized id is replaced", incoming: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "id at the size limit is reused", incoming: strings.Repeat("b", maxRequestIDLength), keep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			handler := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return c.NoContent(http.StatusNoContent)
			})
			require.NoError(t, handler(c))

			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}

func TestGetRequestID_Unset(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

func TestTracing_PassThroughWithoutNewRelic(t *testing.T) {
	tm := NewTracingMiddleware(newTestGlobal().server, nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/persons", nil), rec)

	handler := tm.NewRelicMiddleware()(tm.EnhanceTracing()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	}))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
