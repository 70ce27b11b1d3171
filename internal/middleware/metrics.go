package middleware

import (
	"strconv"

	"storefront-be/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency labelled by route template, so
// /api/products/:id is one series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := metrics.StartTimer()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(timer.Duration().Seconds())
	}
}
