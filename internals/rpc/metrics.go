package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "msns",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Procedure calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "msns",
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "Procedure latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(procedure string, code Code, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := string(code)
	if label == "" {
		label = "OK"
	}
	m.requests.WithLabelValues(procedure, label).Inc()
	m.duration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
