// Package router builds the Echo instance: middleware order, the global
// error handler and every route.
package router

import (
	"github.com/deppfellow/carpool/internal/handler"
	"github.com/deppfellow/carpool/internal/middleware"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Observe(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api")
	registerCarRoutes(api, h)
	registerPersonRoutes(api, h)
	registerCommuteRoutes(api, h)

	return router
}
