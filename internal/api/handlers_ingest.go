// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/metrics"
)

// citationRequest is the POST /api/v1/ingest/citations body.
type citationRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// handleIngestPaper serves POST /api/v1/ingest/papers. Upserts are
// idempotent; re-posting the same paper replaces it.
func (rt *Router) handleIngestPaper(w http.ResponseWriter, r *http.Request) {
	var p graph.Paper
	if err := rt.decodeJSON(r, &p); err != nil {
		metrics.RecordIngest("paper", err)
		rt.rw.DomainError(w, r, err)
		return
	}

	err := rt.store.UpsertPaper(&p)
	metrics.RecordIngest("paper", err)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}

	rt.refreshGraphGauges()
	rt.rw.Created(w, r, map[string]string{"id": p.ID})
}

// handleIngestAuthor serves POST /api/v1/ingest/authors.
func (rt *Router) handleIngestAuthor(w http.ResponseWriter, r *http.Request) {
	var a graph.Author
	if err := rt.decodeJSON(r, &a); err != nil {
		metrics.RecordIngest("author", err)
		rt.rw.DomainError(w, r, err)
		return
	}

	err := rt.store.UpsertAuthor(&a)
	metrics.RecordIngest("author", err)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}

	rt.refreshGraphGauges()
	rt.rw.Created(w, r, map[string]string{"id": a.ID})
}

// handleIngestCitation serves POST /api/v1/ingest/citations. Edges to
// not-yet-ingested papers are accepted and parked until the endpoint
// arrives; re-posting an edge is a no-op.
func (rt *Router) handleIngestCitation(w http.ResponseWriter, r *http.Request) {
	var req citationRequest
	if err := rt.decodeJSON(r, &req); err != nil {
		metrics.RecordIngest("citation", err)
		rt.rw.DomainError(w, r, err)
		return
	}

	err := rt.store.AddCitationEdge(req.From, req.To)
	metrics.RecordIngest("citation", err)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}

	rt.refreshGraphGauges()
	rt.rw.Created(w, r, map[string]string{"from": req.From, "to": req.To})
}

func (rt *Router) refreshGraphGauges() {
	papers, authors, edges := rt.store.Stats()
	metrics.UpdateGraphGauges(papers, authors, edges, rt.store.PendingEdges())
}
