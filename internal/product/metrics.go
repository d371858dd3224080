package product

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for range product computations. They are registered
// once on the default registry.
var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rangeprod_computations_total",
			Help: "Total number of range product computations by arithmetic, policy and status.",
		},
		[]string{"arithmetic", "policy", "status"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rangeprod_computation_duration_seconds",
			Help:    "Wall-clock duration of range product computations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
		[]string{"arithmetic"},
	)
	workerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rangeprod_worker_duration_seconds",
			Help:    "Duration of a single partition worker.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		},
		[]string{"arithmetic"},
	)
	activeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rangeprod_active_workers",
		Help: "Number of partition workers currently running.",
	})
)
