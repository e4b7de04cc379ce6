package router

import (
	"github.com/deppfellow/carpool/internal/handler"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the carpool API:
// health, docs, static assets and the Prometheus scrape endpoint.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", h.OpenAPI.Assets())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if metricsCfg := s.Config.Observability.Metrics; metricsCfg.Enabled {
		r.GET(metricsCfg.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
