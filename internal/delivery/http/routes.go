package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellavista/orderbot/config"
)

// SetupRouter creates and configures the Gin router.
// metricsHandler may be nil, in which case /metrics is not served.
func SetupRouter(cfg *config.Config, handler *Handler, metricsHandler http.Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		chat := v1.Group("/chat")
		{
			chat.POST("", handler.Chat)
			chat.POST("/clear_session", handler.ClearSession)
			chat.GET("/history/:session_id", handler.History)
		}

		menu := v1.Group("/menu")
		{
			menu.GET("", handler.Menu)
			menu.POST("/refresh", handler.RefreshMenu)
		}
	}

	return router
}
