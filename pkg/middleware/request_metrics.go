package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/refdata/refdata-api/pkg/metrics"
)

// RequestMetricsMiddleware counts every handled request by method, matched
// route template and response status.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
