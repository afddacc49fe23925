// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/metrics"
	"github.com/paperlens/paperlens/internal/traverse"
	"github.com/paperlens/paperlens/internal/truth"
)

// GraphReader is the read-only slice of the graph store the engine needs.
type GraphReader interface {
	GetPaper(id string) (*graph.Paper, error)
	AuthorPapers(authorID string) ([]string, error)
	IncomingCitations(paperID string) ([]string, error)
	PaperIDs() []string
}

// SimilarityProvider supplies similar-paper search for content candidates.
type SimilarityProvider interface {
	Similar(paperID string, k int) ([]traverse.SimilarPaper, error)
}

// TruthReader supplies truth values for weighting and final ranking.
type TruthReader interface {
	Score(paperID string) (truth.Score, error)
}

// Engine produces personalized, explainable paper recommendations.
// It is read-only over the graph and safe for concurrent use.
type Engine struct {
	graph   GraphReader
	similar SimilarityProvider
	truth   TruthReader
	cfg     Config
	logger  zerolog.Logger

	requestCount atomic.Int64

	// now is injectable for tests.
	now func() time.Time
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(g GraphReader, sim SimilarityProvider, tr TruthReader, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		graph:   g,
		similar: sim,
		truth:   tr,
		cfg:     cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		now:     time.Now,
	}, nil
}

// Requests returns the number of recommendation requests served.
func (e *Engine) Requests() int64 {
	return e.requestCount.Load()
}

// Recommend produces at most limit ranked papers for the given signal set,
// never including bookmarked papers. Limit values below one fall back to
// the configured default. Users with empty signal sets receive the
// trending fallback instead of an empty list.
func (e *Engine) Recommend(ctx context.Context, signal UserSignal, limit int) ([]Result, error) {
	start := time.Now()
	e.requestCount.Add(1)
	metrics.RecommendRequests.Inc()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()
	if limit < 1 {
		limit = e.cfg.DefaultLimit
	}

	if signal.Empty() {
		metrics.RecommendFallbacks.Inc()
		return e.Trending(limit)
	}

	// The three generators only read the graph and the caller's signal
	// set, so they run in parallel; merging waits for all of them.
	sets := make([]candidateSet, 3)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sets[0] = e.contentCandidates(gctx, signal)
		return gctx.Err()
	})
	g.Go(func() error {
		sets[1] = e.followedAuthorCandidates(gctx, signal)
		return gctx.Err()
	})
	g.Go(func() error {
		sets[2] = e.propagationCandidates(gctx, signal)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(candidateSet)
	for _, cs := range sets {
		merged.merge(cs)
	}

	results := e.rank(merged, signal, limit)
	if len(results) == 0 {
		metrics.RecommendFallbacks.Inc()
		return e.Trending(limit)
	}

	e.logger.Debug().
		Int("candidates", len(merged)).
		Int("results", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendations computed")
	return results, nil
}

// rank applies the final fusion: each candidate's merged weight is
// multiplied by its own truth value, bookmarks are excluded, and the
// output is sorted score-descending with id-ascending ties.
func (e *Engine) rank(merged candidateSet, signal UserSignal, limit int) []Result {
	bookmarked := make(map[string]struct{}, len(signal.Bookmarks))
	for _, id := range signal.Bookmarks {
		bookmarked[id] = struct{}{}
	}

	results := make([]Result, 0, len(merged))
	for id, c := range merged {
		if _, skip := bookmarked[id]; skip {
			continue
		}
		p, err := e.graph.GetPaper(id)
		if err != nil {
			continue
		}
		sc, err := e.truth.Score(id)
		if err != nil {
			continue
		}
		results = append(results, Result{
			PaperID: id,
			Title:   p.Title,
			Score:   c.total() * sc.Value,
			Reason:  c.topReason(),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PaperID < results[j].PaperID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
