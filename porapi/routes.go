package porapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gilby125/por-search/pkg/health"
)

// RegisterRoutes registers the POR search API's routes onto router,
// mirroring teacher's RegisterRoutes shape: a CORS middleware first, then
// the health endpoints, then the versioned API group.
func RegisterRoutes(router *gin.Engine, svc Service, healthChecker *health.HealthChecker) {
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		report := healthChecker.CheckHealth(c.Request.Context())
		status := http.StatusOK
		if report.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})
	router.GET("/health/ready", func(c *gin.Context) {
		report := healthChecker.CheckReadiness(c.Request.Context())
		status := http.StatusOK
		if report.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthChecker.CheckLiveness(c.Request.Context()))
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/search", Search(svc))
		v1.GET("/size", Size(svc))
		v1.GET("/sample", Sample(svc))
		v1.POST("/reindex", Reindex(svc))
	}
}
