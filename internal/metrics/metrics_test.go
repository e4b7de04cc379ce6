package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/carpool/internal/store"
	"github.com/deppfellow/carpool/internal/store/memstore"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New("carpool")

	m.ObserveRequest(http.MethodGet, "/api/cars", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/cars", http.StatusOK, 7*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/cars", http.StatusInternalServerError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/cars", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/cars", "500")))
}

func TestInstrumentStore(t *testing.T) {
	m := New("carpool")
	logger := zerolog.Nop()
	s := InstrumentStore(memstore.New("persons"), m, &logger, time.Second)
	ctx := context.Background()

	_, err := s.Insert(ctx, "persons", map[string]string{"name": "Alice"})
	require.NoError(t, err)

	_, err = s.Select(ctx, "trucks", store.Query{})
	require.Error(t, err)

	require.NoError(t, s.Delete(ctx, "persons", store.Eq("id", 1)))
	require.NoError(t, s.Ping(ctx))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("insert", "persons", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("select", "trucks", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("delete", "persons", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("ping", "", "success")))
}

func TestObserveStore_Error(t *testing.T) {
	m := New("carpool")
	m.ObserveStore("select", "cars", errors.New("down"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("select", "cars", "error")))
}

func TestHandler(t *testing.T) {
	m := New("carpool")
	m.ObserveRequest(http.MethodPost, "/api/persons", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `carpool_http_requests_total{method="POST",route="/api/persons",status="200"} 1`)
}
