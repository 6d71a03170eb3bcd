package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttemptsTotal tracks fetch attempts per operation context and outcome
	FetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readflow_fetch_attempts_total",
			Help: "Total number of fetch attempts",
		},
		[]string{"context", "outcome"},
	)

	// FetchRetriesTotal tracks scheduled retries per operation context
	FetchRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readflow_fetch_retries_total",
			Help: "Total number of retries scheduled after a retryable failure",
		},
		[]string{"context"},
	)

	// FetchLatency tracks per-attempt latency
	FetchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readflow_fetch_latency_seconds",
			Help:    "Fetch attempt latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"context"},
	)

	// FetchFailuresTotal tracks final (post-retry) failures by error kind
	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readflow_fetch_failures_total",
			Help: "Total number of operations that failed after exhausting retries",
		},
		[]string{"context", "kind"},
	)

	// PagesLoadedTotal tracks pages applied by the pagination controller
	PagesLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readflow_pages_loaded_total",
			Help: "Total number of result pages applied, by pagination mode",
		},
		[]string{"mode"},
	)

	// HistorySize tracks the current view-history length
	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "readflow_history_size",
			Help: "Current number of entries in the view history",
		},
	)

	// BookmarksSize tracks the current bookmark count
	BookmarksSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "readflow_bookmarks_size",
			Help: "Current number of bookmarked items",
		},
	)
)
