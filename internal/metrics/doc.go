// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

/*
Package metrics provides Prometheus metrics collection and export.

# Overview

The package instruments:
  - API request latency and throughput
  - Truth-value scoring: recomputations, cache hit/miss, compute duration
  - Graph store size: papers, authors, resolved and pending edges
  - Recommendation requests and trending fallbacks
  - Snapshot save/load performance

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

	import (
	    "github.com/paperlens/paperlens/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	mux.Handle("/metrics", promhttp.Handler())
	metrics.RecordAPIRequest("GET", "/api/v1/papers/{id}/truth-value", "200", elapsed)

Example PromQL queries:

	# API request rate
	rate(api_requests_total[5m])

	# Score cache hit rate
	rate(truth_score_cache_hits_total[5m])
	  / (rate(truth_score_cache_hits_total[5m]) + rate(truth_score_cache_misses_total[5m]))

	# p95 recommendation latency
	histogram_quantile(0.95, rate(recommend_duration_seconds_bucket[5m]))

# Cardinality Management

Endpoint labels use the chi route pattern, never the raw URL, so path
parameters do not explode the series count. Error labels use a small fixed
vocabulary.

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus client
library synchronizes internally.
*/
package metrics
