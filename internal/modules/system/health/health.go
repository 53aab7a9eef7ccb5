package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the liveness endpoint.
func RegisterRoutes(rg *gin.RouterGroup, started time.Time) {
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":     true,
			"uptime": time.Since(started).Seconds(),
		})
	})
}
