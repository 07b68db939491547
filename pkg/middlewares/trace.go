package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/utils"
	"go.uber.org/zap"
)

// TraceID returns Gin middleware that assigns a trace ID and logs the request outcome.
func TraceID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := c.Request.Header.Get(pkg.HeaderTraceId)
		if utils.IsEmpty(traceID) {
			traceID = uuid.New().String()
		}
		c.Set(pkg.TraceId, traceID)
		c.Writer.Header().Set(pkg.HeaderTraceId, traceID)

		c.Next()

		logger.Debug("request handled",
			zap.String(pkg.TraceId, traceID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
