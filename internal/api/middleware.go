// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/paperlens/paperlens/internal/logging"
	"github.com/paperlens/paperlens/internal/metrics"
)

// RateLimitConfig describes one rate-limit bucket.
type RateLimitConfig struct {
	// Requests is the number of requests allowed per Window.
	Requests int

	// Window is the limiting window.
	Window time.Duration
}

// Per-group rate limits, applied per client IP. Health and analytics are
// effectively unthrottled; the ingestion group is the tightest because
// each write fans out into derived-state maintenance.
var (
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
	RateLimitRead   = RateLimitConfig{Requests: 300, Window: time.Minute}
	RateLimitWrite  = RateLimitConfig{Requests: 60, Window: time.Minute}
)

// MiddlewareConfig configures the shared middleware stack.
type MiddlewareConfig struct {
	// AllowedOrigins is the CORS allow-list. Empty disables CORS handling.
	AllowedOrigins []string

	// RateLimitDisabled turns all limiters into no-ops, for tests.
	RateLimitDisabled bool
}

// Middleware builds the handler wrappers shared across route groups.
type Middleware struct {
	cfg MiddlewareConfig
}

// NewMiddleware creates the middleware factory.
func NewMiddleware(cfg MiddlewareConfig) *Middleware {
	return &Middleware{cfg: cfg}
}

// CORS returns the CORS handler, or a pass-through when no origins are
// configured.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	if len(m.cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns an IP-keyed limiter for the given bucket.
func (m *Middleware) RateLimit(limit RateLimitConfig) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		limit.Requests,
		limit.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(routePattern(r)).Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			//nolint:errcheck // best effort on a rejected request
			w.Write([]byte(`{"success":false,"error":{"code":"` + ErrCodeRateLimited + `","message":"rate limit exceeded"}}`))
		}),
	)
}

// RequestID assigns each request an id, honoring a caller-provided
// X-Request-ID, and binds it into the request context and logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		ctx := logging.ContextWithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets the standard API hardening headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// RequestMetrics records request count, latency, and in-flight gauge.
// Endpoint labels use the chi route pattern so path parameters do not
// explode the series count.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		sw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		metrics.RecordAPIRequest(
			r.Method,
			routePattern(r),
			strconv.Itoa(sw.status),
			time.Since(start),
		)
	})
}

// RequestLogging emits one structured line per completed request.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
	})
}

// routePattern returns the chi route pattern, falling back to the raw
// path outside a chi routing context.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// statusResponseWriter captures the status code for metrics and logging.
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusResponseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}
