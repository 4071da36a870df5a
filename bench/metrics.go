package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a dedicated Prometheus registry for benchmark runs.
type Metrics struct {
	Registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	diversity *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "mdp_solver_runs_total", Help: "Solver trials by solver and final status."},
			[]string{"solver", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "mdp_solver_duration_seconds", Help: "Wall time of one solver trial.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
			[]string{"solver"},
		),
		diversity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "mdp_solver_diversity", Help: "Best diversity per solver and instance."},
			[]string{"solver", "instance"},
		),
	}
	m.Registry.MustRegister(m.runs, m.duration, m.diversity)

	return m
}

// ObserveTrial records one trial.
func (m *Metrics) ObserveTrial(solver, status string, elapsed time.Duration) {
	m.runs.WithLabelValues(solver, status).Inc()
	m.duration.WithLabelValues(solver).Observe(elapsed.Seconds())
}

// ObserveResult records the aggregated best diversity.
func (m *Metrics) ObserveResult(solver, instance string, diversity float64) {
	m.diversity.WithLabelValues(solver, instance).Set(diversity)
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
