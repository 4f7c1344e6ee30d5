package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedPath labels requests that hit no route, so scanners probing
// random URLs cannot blow up label cardinality.
const unmatchedPath = "unmatched"

// Metrics records latency and counts per route template (/events/:id, not
// /events/12) and tracks in-flight requests.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
