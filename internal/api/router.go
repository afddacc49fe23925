// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/recommend"
	"github.com/paperlens/paperlens/internal/traverse"
	"github.com/paperlens/paperlens/internal/truth"
)

// Router wires the HTTP surface to the engine components.
type Router struct {
	store    *graph.Store
	scorer   *truth.Scorer
	traverse *traverse.Service
	engine   *recommend.Engine

	mw       *Middleware
	rw       *ResponseWriter
	validate *validator.Validate
	logger   zerolog.Logger
	version  string

	ready func() bool
}

// RouterOption customizes router construction.
type RouterOption func(*Router)

// WithReadyCheck sets the readiness probe callback. The default reports
// ready unconditionally.
func WithReadyCheck(ready func() bool) RouterOption {
	return func(rt *Router) { rt.ready = ready }
}

// WithVersion sets the version string reported by the health endpoint.
func WithVersion(v string) RouterOption {
	return func(rt *Router) { rt.version = v }
}

// NewRouter creates the API router over the given components.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(
	store *graph.Store,
	scorer *truth.Scorer,
	trav *traverse.Service,
	engine *recommend.Engine,
	mwCfg MiddlewareConfig,
	logger zerolog.Logger,
	opts ...RouterOption,
) *Router {
	rt := &Router{
		store:    store,
		scorer:   scorer,
		traverse: trav,
		engine:   engine,
		mw:       NewMiddleware(mwCfg),
		rw:       NewResponseWriter(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "api").Logger(),
		version:  "dev",
		ready:    func() bool { return true },
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Handler builds the chi route tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(SecurityHeaders)
	r.Use(rt.mw.CORS())
	r.Use(RequestLogging)

	// Health probes, near-unthrottled and unmetered so orchestration
	// traffic does not pollute the request metrics.
	r.Group(func(r chi.Router) {
		r.Use(rt.mw.RateLimit(RateLimitHealth))
		r.Get("/api/v1/health/live", rt.handleHealthLive)
		r.Get("/api/v1/health/ready", rt.handleHealthReady)
	})

	// Read surface.
	r.Group(func(r chi.Router) {
		r.Use(RequestMetrics)
		r.Use(rt.mw.RateLimit(RateLimitRead))

		r.Route("/api/v1/papers/{id}", func(r chi.Router) {
			r.Get("/truth-value", rt.handleTruthValue)
			r.Get("/references", rt.handleReferences)
			r.Get("/citations", rt.handleCitations)
			r.Get("/similar", rt.handleSimilar)
		})

		r.Get("/api/v1/graph/{id}", rt.handleGraphExport)

		r.Route("/api/v1/authors/{id}", func(r chi.Router) {
			r.Get("/", rt.handleAuthor)
			r.Get("/collaborators", rt.handleCollaborators)
		})

		r.Get("/api/v1/trending", rt.handleTrending)
		r.Post("/api/v1/recommendations", rt.handleRecommendations)
		r.Post("/api/v1/search/rerank", rt.handleRerank)

		r.Get("/api/v1/analytics/truth-distribution", rt.handleTruthDistribution)
		r.Get("/api/v1/analytics/graph-stats", rt.handleGraphStats)
	})

	// Ingestion surface.
	r.Group(func(r chi.Router) {
		r.Use(RequestMetrics)
		r.Use(rt.mw.RateLimit(RateLimitWrite))

		r.Post("/api/v1/ingest/papers", rt.handleIngestPaper)
		r.Post("/api/v1/ingest/authors", rt.handleIngestAuthor)
		r.Post("/api/v1/ingest/citations", rt.handleIngestCitation)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
