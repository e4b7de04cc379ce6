package middleware

import (
	"time"

	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware counts requests and their latency per route.
type MetricsMiddleware struct {
	server *server.Server
}

// NewMetricsMiddleware records into the server's Prometheus collectors.
func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Observe records method, route template and final status for every
// request. Unmatched routes share a single "unmatched" label.
func (mm *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			mm.server.Metrics.ObserveRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
