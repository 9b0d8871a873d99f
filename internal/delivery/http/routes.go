package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Ruthemir95/nutritrack-sub001/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		imports := v1.Group("/import")
		{
			imports.POST("/csv", handler.ImportCSV)
			imports.POST("/weekly", handler.ImportWeekly)
			imports.GET("/template", handler.DownloadTemplate)
		}

		v1.GET("/meals", handler.ListMeals)
	}

	return router
}
