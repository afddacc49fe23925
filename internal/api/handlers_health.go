// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"
	"runtime"
)

// healthStatus is the health probe payload.
type healthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// graphStats is the analytics graph-size payload.
type graphStats struct {
	Papers         int   `json:"papers"`
	Authors        int   `json:"authors"`
	CitationEdges  int   `json:"citation_edges"`
	PendingEdges   int   `json:"pending_edges"`
	Recomputations int64 `json:"score_recomputations"`
	Recommends     int64 `json:"recommend_requests"`
}

// handleHealthLive serves GET /api/v1/health/live. Answers as long as the
// process accepts connections.
func (rt *Router) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	rt.rw.Success(w, r, healthStatus{
		Status:    "ok",
		Version:   rt.version,
		GoVersion: runtime.Version(),
	})
}

// handleHealthReady serves GET /api/v1/health/ready. Not ready until the
// snapshot restore has completed.
func (rt *Router) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	if !rt.ready() {
		rt.rw.Error(w, r, http.StatusServiceUnavailable, ErrCodeInternalError, "not ready")
		return
	}
	rt.rw.Success(w, r, healthStatus{
		Status:    "ready",
		Version:   rt.version,
		GoVersion: runtime.Version(),
	})
}

// handleTruthDistribution serves GET /api/v1/analytics/truth-distribution:
// corpus-wide truth-value buckets. Scores every paper, so it sits outside
// the request hot path.
func (rt *Router) handleTruthDistribution(w http.ResponseWriter, r *http.Request) {
	rt.rw.Success(w, r, rt.scorer.Distribution())
}

// handleGraphStats serves GET /api/v1/analytics/graph-stats.
func (rt *Router) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	papers, authors, edges := rt.store.Stats()
	rt.rw.Success(w, r, graphStats{
		Papers:         papers,
		Authors:        authors,
		CitationEdges:  edges,
		PendingEdges:   rt.store.PendingEdges(),
		Recomputations: rt.scorer.Recomputations(),
		Recommends:     rt.engine.Requests(),
	})
}
