package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport"
	OutcomeThrottled = "throttled"
)

var (
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditpath_backend",
			Name:      "requests_total",
			Help:      "Requests sent to the prediction backend by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creditpath_backend",
			Name:      "request_duration_seconds",
			Help:      "Round trip latency of backend requests",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	InflightSubmissions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "creditpath_web",
			Name:      "inflight_submissions",
			Help:      "Form submissions currently waiting on the backend",
		},
		[]string{"action"},
	)

	RejectedDuplicates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditpath_web",
			Name:      "duplicate_submissions_total",
			Help:      "Submissions refused because the same action was already in flight",
		},
		[]string{"action"},
	)
)
