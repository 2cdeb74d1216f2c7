// Package router sets up the HTTP routes for the snipstash API server.
package router

import (
	"github.com/gin-gonic/gin"

	"snipstash/internal/http/handler"
	"snipstash/internal/http/middleware"
)

// NewRouter initializes and returns the main Gin engine with all routes.
func NewRouter(h *handler.Handler, health *handler.HealthHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	api := engine.Group("/api/v1")
	api.GET("/ping", handler.Health)
	api.GET("/livez", health.Liveness)
	api.GET("/readyz", health.Readiness)

	api.POST("/snippets", h.Create)
	api.GET("/snippets", h.List)
	api.DELETE("/snippets/:id", h.Delete)
	api.GET("/languages", h.Languages)

	return engine
}
