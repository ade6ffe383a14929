package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pivolan/torque_analyzer/domain/models"
)

// Metrics holds the collectors of one server. Each server owns its registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	values   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "torque_analyzer",
			Name:      "requests_total",
			Help:      "API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "torque_analyzer",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		values: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "torque_analyzer",
			Name:      "classified_values_total",
			Help:      "Measurement values admitted into each bucket.",
		}, []string{"bucket"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.values,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(endpoint, outcome string, seconds float64) {
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(seconds)
}

func (m *Metrics) countValues(data models.RawData) {
	m.values.WithLabelValues("ok_torque").Add(float64(len(data.OKTorque)))
	m.values.WithLabelValues("nok_torque").Add(float64(len(data.NOKTorque)))
	m.values.WithLabelValues("ok_angle").Add(float64(len(data.OKAngle)))
	m.values.WithLabelValues("nok_angle").Add(float64(len(data.NOKAngle)))
}
