package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"pfp-registry.backend/internal/metrics"
)

// MetricsMiddleware records request counts and latencies. The route template
// is used as the path label so account addresses do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
