// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/traverse"
)

// paperSummary is the compact paper shape used by list endpoints.
type paperSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year"`
	Venue         string `json:"venue,omitempty"`
	CitationCount int    `json:"citation_count"`
}

func summarize(papers []*graph.Paper) []paperSummary {
	out := make([]paperSummary, 0, len(papers))
	for _, p := range papers {
		out = append(out, paperSummary{
			ID:            p.ID,
			Title:         p.Title,
			Year:          p.Year,
			Venue:         p.Venue,
			CitationCount: p.CitationCount,
		})
	}
	return out
}

// handleTruthValue serves GET /api/v1/papers/{id}/truth-value.
func (rt *Router) handleTruthValue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	score, err := rt.scorer.Score(id)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, score)
}

// handleReferences serves GET /api/v1/papers/{id}/references.
func (rt *Router) handleReferences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	papers, err := rt.traverse.References(id)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, summarize(papers))
}

// handleCitations serves GET /api/v1/papers/{id}/citations.
func (rt *Router) handleCitations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	papers, err := rt.traverse.Citations(id)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, summarize(papers))
}

// handleSimilar serves GET /api/v1/papers/{id}/similar?k=N. A missing or
// non-positive k falls back to the configured default.
func (rt *Router) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			rt.rw.BadRequest(w, r, "k must be an integer")
			return
		}
		k = v
	}

	similar, err := rt.traverse.Similar(id, k)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, similar)
}

// handleGraphExport serves GET /api/v1/graph/{id}?depth=N. Depth values
// outside the supported range are clamped, not rejected.
func (rt *Router) handleGraphExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	depth := traverse.DepthDefault
	if raw := r.URL.Query().Get("depth"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			rt.rw.BadRequest(w, r, "depth must be an integer")
			return
		}
		// An explicit negative depth clamps to zero rather than falling
		// back to the default.
		if v < 0 {
			v = 0
		}
		depth = v
	}

	export, err := rt.traverse.Export(id, depth)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, export)
}
