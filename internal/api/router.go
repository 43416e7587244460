// Package api serves observed-sky snapshots over HTTP.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router. An empty
// allowedOrigins allows every origin.
func SetupRouter(handler *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// API v1 routes.
	v1 := router.Group("/v1")
	v1.GET("/sky", handler.GetSky)
	v1.GET("/sky/closest", handler.GetClosest)
	v1.GET("/sky/summary", handler.GetSummary)
	v1.GET("/visibility", handler.GetVisibility)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
