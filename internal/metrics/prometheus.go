package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "iris"

type Prometheus struct {
	Ticks       *prometheus.CounterVec
	Loss        *prometheus.GaugeVec
	Generations *prometheus.GaugeVec
	Swaps       *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	labels := []string{"pair", "mode"}
	return Prometheus{
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticks",
				Help:      "training steps applied to the neuron",
			}, labels),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "loss",
				Help:      "running average log-loss",
			}, labels),
		Generations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generations",
				Help:      "completed passes over the training sequence",
			}, labels),
		Swaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions",
				Help:      "configuration changes applied to the trainer",
			}, labels),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Ticks, p.Loss, p.Generations, p.Swaps}
}
