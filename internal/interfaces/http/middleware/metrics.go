package middleware

import (
	"github.com/estateflow/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight requests. The route
// label is the matched pattern, so path parameters do not explode cardinality.
func Metrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		done := m.Begin()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
