package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// Logging emits one structured line per request.
func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			log.Error("http request failed",
				"method", c.Request.Method, "path", c.FullPath(), "status", status, "duration", duration)
		} else {
			log.Info("http request",
				"method", c.Request.Method, "path", c.FullPath(), "status", status, "duration", duration)
		}
	}
}
