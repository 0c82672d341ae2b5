package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "artsearch"

// Index, search and seeding metrics.
var (
	IndexEnsureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_ensure_total",
			Help:      "Index (re)creations by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	IndexEnsureDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_ensure_duration_seconds",
			Help:      "Time spent dropping and recreating an index",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)

	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_total",
			Help:      "Search executions by outcome",
		},
		[]string{"outcome"}, // "ok" / "index_not_found" / "malformed" / "backend"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SeedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_records_total",
			Help:      "Records written by the seeder",
		},
		[]string{"kind"}, // "author" / "article"
	)
)

var registerCore sync.Once

// RegisterCoreMetrics registers index, search and seed metrics. Must be called from main.
func RegisterCoreMetrics() {
	registerCore.Do(func() {
		prometheus.MustRegister(IndexEnsureTotal)
		prometheus.MustRegister(IndexEnsureDuration)
		prometheus.MustRegister(SearchTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SeedRecordsTotal)
	})
}
