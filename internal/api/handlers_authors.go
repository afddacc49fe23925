// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleAuthor serves GET /api/v1/authors/{id}: the author record with its
// derived metrics (paper count, citation total, h-index).
func (rt *Router) handleAuthor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	author, err := rt.store.GetAuthor(id)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, author)
}

// handleCollaborators serves GET /api/v1/authors/{id}/collaborators:
// co-authors ordered by joint paper count.
func (rt *Router) handleCollaborators(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	collabs, err := rt.store.CoAuthors(id)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, collabs)
}
