package main

import (
	"context"
	"net/http"
	"time"

	"listing-pricer/internal/middleware"
	"listing-pricer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupAPIRoutes()
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{
			"status":         "ok",
			"schema_columns": a.Schema.Len(),
			"neighbourhoods": len(a.Neighbourhoods.Names()),
			"cache":          "disabled",
		}
		if a.Cache != nil {
			if _, err := a.Cache.Exists(ctx, "health:ping"); err != nil {
				logger.GlobalLogger.Printf("Redis ping failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
				return
			}
			status["cache"] = "ok"
		}
		c.JSON(http.StatusOK, status)
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(a.RateLimiter))
	api.Use(middleware.AuthMiddleware(a.Config.Auth.JWTSecret))
	{
		api.POST("/listings/features", a.ListingHandler.BuildFeatures)
		api.POST("/listings/predict", a.ListingHandler.Predict)

		api.GET("/neighbourhoods", a.NeighbourhoodHandler.List)
		api.GET("/neighbourhoods/lookup", a.NeighbourhoodHandler.Lookup)

		api.GET("/schema", a.SchemaHandler.GetSchema)
	}
}
