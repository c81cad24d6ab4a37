// Package metrics exposes Prometheus collectors for the contract and
// viewport pipeline. Collectors register on the default registry; the
// embedding application decides whether and how to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Contract source metrics
	ContractsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "contracts",
		Name:      "fetched_total",
		Help:      "Total contracts fetched per source",
	}, []string{"source"})

	ContractsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "contracts",
		Name:      "dropped_total",
		Help:      "Total contracts dropped for invalid coordinates",
	}, []string{"source"})

	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "contracts",
		Name:      "fetch_errors_total",
		Help:      "Total contract source fetch failures",
	}, []string{"source"})

	// Viewport engine metrics
	Recomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "viewport",
		Name:      "recompute_total",
		Help:      "Total viewport recomputations by trigger reason",
	}, []string{"reason"})

	RecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "contractmap",
		Subsystem: "viewport",
		Name:      "recompute_duration_seconds",
		Help:      "Duration of a full filter, box and fit recomputation",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	VisibleContracts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "contractmap",
		Subsystem: "viewport",
		Name:      "visible_contracts",
		Help:      "Contracts surviving the preference filter in the last recomputation",
	})

	// Snapshot renderer metrics
	TilesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "render",
		Name:      "tiles_fetched_total",
		Help:      "Total map tiles fetched by result",
	}, []string{"result"})

	TileFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "contractmap",
		Subsystem: "render",
		Name:      "tile_fetch_duration_seconds",
		Help:      "Duration of individual tile downloads",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	SnapshotsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "contractmap",
		Subsystem: "render",
		Name:      "snapshots_total",
		Help:      "Total map snapshots composited",
	})
)
