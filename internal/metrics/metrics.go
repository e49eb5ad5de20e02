package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks the training progress.
type Metrics struct {
	prometheus Prometheus
}

// New creates new unregistered metrics.
func New() *Metrics {
	return &Metrics{
		prometheus: NewPrometheusMetrics(),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.prometheus.collectors() {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("could not register metrics: %w", err)
		}
	}
	return nil
}

// Tick records one training step.
func (m *Metrics) Tick(pair, mode string, loss float64, generation int) {
	m.prometheus.Ticks.WithLabelValues(pair, mode).Inc()
	m.prometheus.Loss.WithLabelValues(pair, mode).Set(loss)
	m.prometheus.Generations.WithLabelValues(pair, mode).Set(float64(generation))
}

// Swap records a configuration change.
func (m *Metrics) Swap(pair, mode string) {
	m.prometheus.Swaps.WithLabelValues(pair, mode).Inc()
}
