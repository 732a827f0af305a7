package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics records custody API call outcomes. It implements
// custody.Recorder.
type ClientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientMetrics builds and registers the client metric set. A nil
// registerer falls back to the default prometheus registry.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &ClientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_client_requests_total",
			Help: "Total custody API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custody_client_request_duration_seconds",
			Help:    "Custody API request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(m.requests, m.duration)
	return m
}

// ObserveRequest records one completed API call.
func (m *ClientMetrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
