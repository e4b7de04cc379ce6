package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/carpool/internal/middleware"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler answers GET /status for monitors and load balancers.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings the table store. It returns 200 when the store
// answers and 503 otherwise. With health checks disabled it only reports
// that the process is up.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]any),
	}

	checks := response["checks"].(map[string]any)
	isHealthy := true

	healthCfg := h.server.Config.Observability.HealthChecks
	if healthCfg.Enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
		defer cancel()

		storeStart := time.Now()
		if err := h.server.Store.Ping(ctx); err != nil {
			checks["store"] = map[string]any{
				"status":        "unhealthy",
				"driver":        h.server.Config.Store.Driver,
				"response_time": time.Since(storeStart).String(),
				"error":         err.Error(),
			}
			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       "store",
					"operation":        "health_check",
					"error_type":       "store_unhealthy",
					"response_time_ms": time.Since(storeStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			checks["store"] = map[string]any{
				"status":        "healthy",
				"driver":        h.server.Config.Store.Driver,
				"response_time": time.Since(storeStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
