// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Truth-value scoring and cache efficiency
// - Graph store size and ingestion
// - Recommendation requests
// - Snapshot persistence

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Truth Scoring Metrics
	ScoreRecomputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truth_score_recomputations_total",
			Help: "Total number of truth-value recomputations",
		},
	)

	ScoreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truth_score_cache_hits_total",
			Help: "Total number of truth-value cache hits",
		},
	)

	ScoreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truth_score_cache_misses_total",
			Help: "Total number of truth-value cache misses (stale or absent)",
		},
	)

	ScoreComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "truth_score_compute_duration_seconds",
			Help:    "Duration of truth-value recomputations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScoreInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truth_score_invalidations_total",
			Help: "Total number of cache invalidations triggered by graph mutations",
		},
	)

	// Graph Store Metrics
	GraphPapers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_papers",
			Help: "Current number of papers in the graph store",
		},
	)

	GraphAuthors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_authors",
			Help: "Current number of authors in the graph store",
		},
	)

	GraphCitationEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_citation_edges",
			Help: "Current number of resolved citation edges",
		},
	)

	GraphPendingEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_pending_edges",
			Help: "Current number of parked forward-reference edges",
		},
	)

	IngestOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_ingest_operations_total",
			Help: "Total number of ingestion operations",
		},
		[]string{"kind", "result"}, // kind: paper, author, citation
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_trending_fallbacks_total",
			Help: "Total number of requests served by the trending fallback",
		},
	)

	// Snapshot Metrics
	SnapshotDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapshot_duration_seconds",
			Help:    "Duration of snapshot save and load operations in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"}, // "save", "load"
	)

	SnapshotErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_errors_total",
			Help: "Total number of snapshot errors",
		},
		[]string{"operation"},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot save",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordScoreCompute records one truth-value recomputation.
func RecordScoreCompute(duration time.Duration) {
	ScoreRecomputations.Inc()
	ScoreComputeDuration.Observe(duration.Seconds())
}

// RecordIngest records one ingestion operation.
func RecordIngest(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	IngestOperations.WithLabelValues(kind, result).Inc()
}

// UpdateGraphGauges refreshes the graph size gauges.
func UpdateGraphGauges(papers, authors, edges, pending int) {
	GraphPapers.Set(float64(papers))
	GraphAuthors.Set(float64(authors))
	GraphCitationEdges.Set(float64(edges))
	GraphPendingEdges.Set(float64(pending))
}

// RecordSnapshot records one snapshot save or load.
func RecordSnapshot(operation string, duration time.Duration, err error) {
	SnapshotDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		SnapshotErrors.WithLabelValues(operation).Inc()
		return
	}
	if operation == "save" {
		SnapshotLastSuccess.Set(float64(time.Now().Unix()))
	}
}
