package router

import (
	"net/http"

	"github.com/estateflow/backend/internal/infrastructure/auth"
	"github.com/estateflow/backend/internal/infrastructure/config"
	"github.com/estateflow/backend/internal/interfaces/http/handler"
	"github.com/estateflow/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles everything the route table dispatches to
type Handlers struct {
	Property *handler.PropertyHandler
	Unit     *handler.UnitHandler
	Board    *handler.BoardHandler
	Health   *handler.HealthHandler
	// Metrics serves the Prometheus scrape endpoint. Nil disables /metrics.
	Metrics http.Handler
}

// PropertyRoutes returns the property resource group
func PropertyRoutes(h *handler.PropertyHandler) *Group {
	return NewGroup("property", "/properties").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID)
}

// UnitRoutes returns the unit resource group. Physical deletion is admin only.
func UnitRoutes(h *handler.UnitHandler) *Group {
	return NewGroup("unit", "/units").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		PATCH("/:id/status", h.TransitionStatus).
		GET("/:id/history", h.History).
		GET("/:id/history/export", h.ExportHistory).
		DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.Delete)
}

// BoardRoutes returns the status board group
func BoardRoutes(h *handler.BoardHandler) *Group {
	return NewGroup("board", "/board").
		GET("", h.GetBoard).
		GET("/units", h.ListUnits)
}

// RegisterAPI mounts the versioned resource routes
func RegisterAPI(r *Router, h Handlers) {
	r.Register(
		PropertyRoutes(h.Property),
		UnitRoutes(h.Unit),
		BoardRoutes(h.Board),
	).Setup()
}

// RegisterOperational mounts probes, metrics and the API docs outside the
// versioned prefix
func RegisterOperational(engine *gin.Engine, h Handlers, swagger config.SwaggerConfig) {
	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)
	if h.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(h.Metrics))
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(swagger.Enabled, swagger.AllowedIPs),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
}
