package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by the API router and the
// outbox processor.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec
	OutboxProcessed *prometheus.CounterVec
	OutboxLag       prometheus.Gauge
}

func New(prefix string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		ErrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
		OutboxProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_outbox_events_total",
				Help: "Outbox events processed, by outcome",
			},
			[]string{"outcome"},
		),
		OutboxLag: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_outbox_pending",
				Help: "Pending outbox events at last poll",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.RequestDuration, m.RequestTotal, m.ErrorTotal, m.OutboxProcessed, m.OutboxLag)
	}
	return m
}
