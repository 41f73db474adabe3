package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count, duration, and in-flight gauge per route.
// The route template (e.g. /api/v1/subsidies/:id) labels the series so
// high-cardinality raw paths never reach the registry.
func Metrics(m *prom.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPActiveRequests.WithLabelValues(method, path).Inc()
		start := time.Now()

		c.Next()

		m.HTTPActiveRequests.WithLabelValues(method, path).Dec()
		prom.RecordHTTPRequest(m, method, path, c.Writer.Status(), time.Since(start))
	}
}
