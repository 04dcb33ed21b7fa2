package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/api/handlers"
	"github.com/jafarshop/storemigrate/internal/api/middleware"
	"github.com/jafarshop/storemigrate/internal/config"
)

// Services are the use cases exposed over HTTP
type Services struct {
	Migration handlers.MigrationService
	Compare   handlers.CompareService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.API.KeyHash, logger))
	{
		v1.POST("/preview", handlers.HandlePreview(svc.Migration, logger))

		v1.POST("/jobs", handlers.HandleCreateJob(svc.Migration, logger))
		v1.GET("/jobs/:id", handlers.HandleGetJob(svc.Migration, logger))
		v1.POST("/jobs/:id/start", handlers.HandleStartJob(svc.Migration, logger))

		v1.GET("/compare/:type", handlers.HandleGaps(svc.Compare, logger))
		v1.GET("/orphans/:type", handlers.HandleOrphans(svc.Compare, logger))
		v1.GET("/inventory/deltas", handlers.HandleInventoryDeltas(svc.Compare, logger))
		v1.POST("/inventory/apply", handlers.HandleApplyInventory(svc.Compare, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
