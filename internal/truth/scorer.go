// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package truth computes the normalized [0, 10] credibility/impact score of
// each paper from citation, venue, and centrality evidence. Scores are
// cached per paper with an explicit staleness flag and recomputed lazily
// under a single-flight guard, so bulk ingestion never triggers
// recomputation storms and concurrent readers of the same stale paper share
// one recomputation.
package truth

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/metrics"
)

// Confidence qualifies how much evidence backed a score.
type Confidence string

const (
	// ConfidenceLow marks metadata-only baseline scores for papers with no
	// edges and no citation count.
	ConfidenceLow Confidence = "low"

	// ConfidenceNormal marks fully evidenced scores.
	ConfidenceNormal Confidence = "normal"
)

// Score is the result of a truth-value computation.
type Score struct {
	// PaperID identifies the scored paper.
	PaperID string `json:"paper_id"`

	// Value is the truth value in [0, 10].
	Value float64 `json:"score"`

	// Confidence is low for metadata-only baselines, normal otherwise.
	Confidence Confidence `json:"confidence"`

	// AsOf is when the score was computed.
	AsOf time.Time `json:"as_of"`

	// Dimensions is the per-term breakdown for explainability.
	Dimensions Dimensions `json:"dimensions"`
}

// GraphReader is the read-only slice of the graph store the scorer needs.
type GraphReader interface {
	GetPaper(id string) (*graph.Paper, error)
	OutgoingCitations(id string) ([]string, error)
	IncomingCitations(id string) ([]string, error)
	CohortMaxCitations(year int) int
	PaperIDs() []string
}

// record is the cached score state of one paper.
type record struct {
	score Score
	stale bool
}

// Scorer computes and caches truth-value scores. Safe for concurrent use.
type Scorer struct {
	graph  GraphReader
	cfg    Config
	logger zerolog.Logger
	now    timeNow

	mu    sync.RWMutex
	cache map[string]*record
	// gens counts invalidations per paper. A recomputation snapshots the
	// generation before evaluating the formula; if it moved while the
	// formula ran, the stored record stays stale so the next read
	// recomputes against the mutated graph.
	gens map[string]uint64

	flight singleflight.Group

	// recomputations counts full formula evaluations; tests and the
	// metrics layer observe it to assert single-flight behavior.
	recomputations atomic.Int64
}

// Invalidator is implemented by stores that push staleness notifications.
type Invalidator interface {
	RegisterInvalidationHook(graph.InvalidationHook)
}

// NewScorer creates a scorer over the given graph.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScorer(g GraphReader, cfg Config, logger zerolog.Logger) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		graph:  g,
		cfg:    cfg.normalized(),
		logger: logger.With().Str("component", "truth").Logger(),
		now:    time.Now,
		cache:  make(map[string]*record),
		gens:   make(map[string]uint64),
	}

	if inv, ok := g.(Invalidator); ok {
		inv.RegisterInvalidationHook(s.Invalidate)
	}
	return s, nil
}

// Score returns the cached truth value of the paper, recomputing it first
// when the cache entry is missing, stale, or older than the TTL. Concurrent
// requests for the same stale paper share one recomputation. Unknown ids
// fail with graph.ErrNotFound.
func (s *Scorer) Score(paperID string) (Score, error) {
	if sc, ok := s.cached(paperID); ok {
		metrics.ScoreCacheHits.Inc()
		return sc, nil
	}
	metrics.ScoreCacheMisses.Inc()

	v, err, _ := s.flight.Do(paperID, func() (any, error) {
		// A caller that queued behind the winning flight finds the fresh
		// entry here instead of recomputing again.
		if sc, ok := s.cached(paperID); ok {
			return sc, nil
		}
		return s.recompute(paperID)
	})
	if err != nil {
		return Score{}, err
	}
	return v.(Score), nil
}

// Invalidate marks the paper's cached score stale. Called by the graph
// store's invalidation hook on every affecting mutation.
func (s *Scorer) Invalidate(paperID string) {
	s.mu.Lock()
	s.gens[paperID]++
	if rec, ok := s.cache[paperID]; ok {
		rec.stale = true
	}
	s.mu.Unlock()
	metrics.ScoreInvalidations.Inc()
}

// Recomputations reports how many full formula evaluations have run.
func (s *Scorer) Recomputations() int64 {
	return s.recomputations.Load()
}

// cached returns the cache entry when it is present, fresh, and unexpired.
func (s *Scorer) cached(paperID string) (Score, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[paperID]
	if !ok || rec.stale {
		return Score{}, false
	}
	if s.now().Sub(rec.score.AsOf) > s.cfg.CacheTTL {
		return Score{}, false
	}
	return rec.score, true
}

func (s *Scorer) recompute(paperID string) (Score, error) {
	s.recomputations.Add(1)
	start := time.Now()
	defer func() { metrics.RecordScoreCompute(time.Since(start)) }()

	s.mu.RLock()
	gen := s.gens[paperID]
	s.mu.RUnlock()

	value, dims, err := s.compute(paperID)
	confidence := ConfidenceNormal
	switch {
	case errors.Is(err, ErrInsufficientData):
		// Data-sparse papers recover into a metadata-only baseline rather
		// than failing the caller.
		value = s.baseline(dims)
		confidence = ConfidenceLow
	case err != nil:
		return Score{}, err
	}

	sc := Score{
		PaperID:    paperID,
		Value:      value,
		Confidence: confidence,
		AsOf:       s.now(),
		Dimensions: dims,
	}

	s.mu.Lock()
	// An invalidation that landed mid-formula saw graph state this result
	// may not reflect; keep the record stale so it is not served again.
	s.cache[paperID] = &record{score: sc, stale: s.gens[paperID] != gen}
	s.mu.Unlock()

	s.logger.Debug().
		Str("paper_id", paperID).
		Float64("score", sc.Value).
		Str("confidence", string(sc.Confidence)).
		Msg("truth value recomputed")

	return sc, nil
}
