// Package metrics exposes prometheus instrumentation for graph generation
// and trial execution. Everything hangs off a Registry so tests and
// parallel experiments can run isolated instances; DefaultRegistry serves
// the common single-process case.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the simulation engine.
type Registry struct {
	GraphsGeneratedTotal *prometheus.CounterVec
	GenerationDuration   *prometheus.HistogramVec
	GraphNodes           *prometheus.HistogramVec
	GraphEdges           *prometheus.HistogramVec

	TrialsCompletedTotal *prometheus.CounterVec
	TrialDuration        *prometheus.HistogramVec
	TrialSteps           *prometheus.HistogramVec
	TrialsInFlight       prometheus.Gauge
	OutbreakFinalSize    *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.GraphsGeneratedTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "episim_graphs_generated_total",
			Help: "Total number of networks generated",
		},
		[]string{"topology"},
	)
	r.GenerationDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_generation_duration_seconds",
			Help:    "Network generation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"topology"},
	)
	r.GraphNodes = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_graph_nodes",
			Help:    "Node count of generated networks",
			Buckets: []float64{100, 500, 1000, 5000, 10000},
		},
		[]string{"topology"},
	)
	r.GraphEdges = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_graph_edges",
			Help:    "Edge count of generated networks",
			Buckets: []float64{100, 1000, 10000, 100000},
		},
		[]string{"topology"},
	)

	r.TrialsCompletedTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "episim_trials_completed_total",
			Help: "Total number of completed simulation trials",
		},
		[]string{"topology"},
	)
	r.TrialDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_trial_duration_seconds",
			Help:    "Wall-clock duration of one simulation trial",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"topology"},
	)
	r.TrialSteps = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_trial_steps",
			Help:    "Discrete time steps until the epidemic died out",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"topology"},
	)
	r.TrialsInFlight = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "episim_trials_in_flight",
			Help: "Trials currently executing",
		},
	)
	r.OutbreakFinalSize = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_outbreak_final_size",
			Help:    "Final outbreak size (R at termination) per trial",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"topology"},
	)

	return r
}

// PrometheusRegistry returns the underlying registry for exposition.
func (r *Registry) PrometheusRegistry() *prometheus.Registry { return r.registry }

// RecordGeneration records one generated network.
func (r *Registry) RecordGeneration(topology string, nodes, edges int, duration time.Duration) {
	r.GraphsGeneratedTotal.WithLabelValues(topology).Inc()
	r.GenerationDuration.WithLabelValues(topology).Observe(duration.Seconds())
	r.GraphNodes.WithLabelValues(topology).Observe(float64(nodes))
	r.GraphEdges.WithLabelValues(topology).Observe(float64(edges))
}

// RecordTrial records one finished simulation trial.
func (r *Registry) RecordTrial(topology string, steps, finalSize int, duration time.Duration) {
	r.TrialsCompletedTotal.WithLabelValues(topology).Inc()
	r.TrialDuration.WithLabelValues(topology).Observe(duration.Seconds())
	r.TrialSteps.WithLabelValues(topology).Observe(float64(steps))
	r.OutbreakFinalSize.WithLabelValues(topology).Observe(float64(finalSize))
}
