package probe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the probe's Prometheus collectors.
type Metrics struct {
	ProbesTotal   *prometheus.CounterVec
	BytesRead     prometheus.Histogram
	ChunksRead    prometheus.Histogram
	DetectedTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// means the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	factory := promauto.With(reg)

	return &Metrics{
		ProbesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_size_probes_total",
				Help: "Completed probes by outcome",
			},
			[]string{"outcome"},
		),

		BytesRead: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "image_size_probe_bytes_read",
				Help:    "Bytes consumed before a probe finished",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
		),

		ChunksRead: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "image_size_probe_chunks_read",
				Help:    "Chunks consumed before a probe finished",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
			},
		),

		DetectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_size_detected_total",
				Help: "Successful detections by image type",
			},
			[]string{"type"},
		),

		gatherer: gatherer,
	}
}

// Handler serves the registry these metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) record(outcome string, bytes, chunks int, typ string) {
	if m == nil {
		return
	}
	m.ProbesTotal.WithLabelValues(outcome).Inc()
	m.BytesRead.Observe(float64(bytes))
	m.ChunksRead.Observe(float64(chunks))
	if typ != "" {
		m.DetectedTotal.WithLabelValues(typ).Inc()
	}
}
