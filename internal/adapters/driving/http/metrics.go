package http

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "searchbox"

// Metrics holds the search API collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	failures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_requests_total",
				Help:      "Count of search requests by response status code.",
			},
			[]string{"code"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Time to answer a search request, including injected latency.",
				Buckets:   []float64{0.005, 0.05, 0.1, 0.25, 0.5, 0.75, 1, 2, 5},
			},
		),
		failures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_injected_failures_total",
				Help:      "Count of transient failures returned by the backend.",
			},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.failures)
	return m
}

func (m *Metrics) observe(code int, elapsed time.Duration) {
	m.requests.WithLabelValues(strconv.Itoa(code)).Inc()
	m.latency.Observe(elapsed.Seconds())
}
