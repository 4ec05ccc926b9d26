package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records request counts and latencies per route.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewMetrics registers the client collectors with reg.
// A nil reg uses a private registry, which keeps repeated construction in
// tests from panicking on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "karmicdd_api_requests_total",
				Help: "Total number of API requests by route and status",
			},
			[]string{"route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "karmicdd_api_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		inflight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "karmicdd_api_requests_in_flight",
				Help: "Number of API requests awaiting a response",
			},
		),
	}
}

// start marks a request as in flight and returns a function recording its
// outcome. A status of zero records a transport failure.
func (m *Metrics) start(route string) func(status int) {
	if m == nil {
		return func(int) {}
	}
	began := time.Now()
	m.inflight.Inc()
	return func(status int) {
		m.inflight.Dec()
		label := "error"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		m.requests.WithLabelValues(route, label).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(began).Seconds())
	}
}
