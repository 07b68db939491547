package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creditpath_web",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of page and form requests in seconds",
			// page renders are fast; predict waits on the backend
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditpath_web",
			Name:      "http_requests_total",
			Help:      "Total number of page and form requests",
		},
		[]string{"method", "path", "status"},
	)
)

// Metrics returns Gin middleware for Prometheus instrumentation.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
