package api

import (
	"net/http"

	"activity-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/users", handlers.ListUsersHandler)

		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.Session())
		{
			dashboard.GET("/overview", handlers.OverviewHandler)
			dashboard.GET("/insights", handlers.InsightsHandler)
			dashboard.GET("/timeline", handlers.TimelineHandler)
			dashboard.GET("/heatmap", handlers.HeatmapHandler)
			dashboard.GET("/team", handlers.TeamHandler)
		}

		sessions := api.Group("/sessions/:sessionId")
		{
			sessions.GET("/views", handlers.SessionViewsHandler)
			sessions.GET("/stream", handlers.StreamHandler)
			sessions.DELETE("", handlers.DeleteSessionHandler)
		}
	}

	return router
}
