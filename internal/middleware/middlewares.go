// Package middleware holds the cross-cutting request handling: request
// ids, request-scoped logging, New Relic tracing, Prometheus metrics,
// CORS, panic recovery and the global error handler.
package middleware

import (
	"github.com/deppfellow/carpool/internal/server"
)

// Middlewares groups every middleware component so the router receives
// a single value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components. The tracing layer
// gets the New Relic application when the agent is running.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         NewMetricsMiddleware(s),
	}
}
