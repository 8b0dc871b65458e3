package router

import (
	"github.com/deppfellow/hr-manager/internal/handler"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes wires the endpoints that sit outside the roster API.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and the docs UI assets
	r.Static("/static", s.Config.Server.DocsDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
