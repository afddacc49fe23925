// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/paperlens/paperlens/internal/recommend"
)

// recommendRequest is the POST /api/v1/recommendations body. All signal
// lists may be empty; an empty signal set gets the trending fallback.
type recommendRequest struct {
	Bookmarks []string       `json:"bookmarks" validate:"omitempty,dive,required"`
	Follows   []string       `json:"follows" validate:"omitempty,dive,required"`
	History   []historyEntry `json:"history" validate:"omitempty,dive"`
	Interests []string       `json:"interests" validate:"omitempty,dive,required"`
	Limit     int            `json:"limit" validate:"gte=0,lte=200"`
}

type historyEntry struct {
	PaperID string    `json:"paper_id" validate:"required"`
	At      time.Time `json:"at"`
}

// rerankRequest is the POST /api/v1/search/rerank body: an ordered search
// result list plus the user's signals to personalize it against.
type rerankRequest struct {
	Results   []string       `json:"results" validate:"required,min=1,dive,required"`
	Follows   []string       `json:"follows" validate:"omitempty,dive,required"`
	History   []historyEntry `json:"history" validate:"omitempty,dive"`
	Interests []string       `json:"interests" validate:"omitempty,dive,required"`
}

// handleRecommendations serves POST /api/v1/recommendations.
func (rt *Router) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := rt.decodeJSON(r, &req); err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}

	signal := recommend.UserSignal{
		Bookmarks: req.Bookmarks,
		Follows:   req.Follows,
		History:   toHistory(req.History),
		Interests: req.Interests,
	}

	results, err := rt.engine.Recommend(r.Context(), signal, req.Limit)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, results)
}

// handleTrending serves GET /api/v1/trending?limit=N.
func (rt *Router) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			rt.rw.BadRequest(w, r, "limit must be an integer")
			return
		}
		limit = v
	}

	results, err := rt.engine.Trending(limit)
	if err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}
	rt.rw.Success(w, r, results)
}

// handleRerank serves POST /api/v1/search/rerank. Unknown paper ids keep
// their positional score instead of failing the request.
func (rt *Router) handleRerank(w http.ResponseWriter, r *http.Request) {
	var req rerankRequest
	if err := rt.decodeJSON(r, &req); err != nil {
		rt.rw.DomainError(w, r, err)
		return
	}

	signal := recommend.UserSignal{
		Follows:   req.Follows,
		History:   toHistory(req.History),
		Interests: req.Interests,
	}
	ranked := rt.engine.RerankSearch(signal, req.Results)
	rt.rw.Success(w, r, ranked)
}

func toHistory(entries []historyEntry) []recommend.HistoryEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]recommend.HistoryEntry, 0, len(entries))
	for _, h := range entries {
		out = append(out, recommend.HistoryEntry{PaperID: h.PaperID, At: h.At})
	}
	return out
}
