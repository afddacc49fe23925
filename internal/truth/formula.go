// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package truth

import (
	"errors"
	"math"
	"time"

	"github.com/paperlens/paperlens/internal/graph"
)

// ErrInsufficientData indicates a paper with no edges and no raw citation
// count. It is recovered inside the scorer into a low-confidence baseline
// and never surfaces to callers.
var ErrInsufficientData = errors.New("insufficient data for full scoring")

// Dimensions is the per-term breakdown of a truth-value score. Each term is
// already scaled to [0, 10]; RecencyFactor is the decay multiplier that was
// applied to the citation term.
type Dimensions struct {
	Citation      float64 `json:"citation"`
	Venue         float64 `json:"venue"`
	Centrality    float64 `json:"centrality"`
	RecencyFactor float64 `json:"recency_factor"`
}

// citersDepth is the traversal bound of the centrality term: the paper's
// citers plus the citers of those citers.
const citersDepth = 2

// compute derives the full truth-value score of one paper. It returns
// ErrInsufficientData for papers with zero edges and zero citation count.
func (s *Scorer) compute(paperID string) (float64, Dimensions, error) {
	p, err := s.graph.GetPaper(paperID)
	if err != nil {
		return 0, Dimensions{}, err
	}

	out, err := s.graph.OutgoingCitations(paperID)
	if err != nil {
		return 0, Dimensions{}, err
	}
	in, err := s.graph.IncomingCitations(paperID)
	if err != nil {
		return 0, Dimensions{}, err
	}

	venue := 10 * clamp01(p.VenueWeight)
	if len(out) == 0 && len(in) == 0 && p.CitationCount == 0 {
		return 0, Dimensions{Venue: venue, RecencyFactor: 1}, ErrInsufficientData
	}

	recency := s.recencyFactor(p.Year)
	citation := s.citationTerm(p, recency)
	centrality := s.centralityTerm(paperID, in)

	total := s.cfg.CitationWeight*citation +
		s.cfg.VenueWeight*venue +
		s.cfg.CentralityWeight*centrality

	dims := Dimensions{
		Citation:      round2(citation),
		Venue:         round2(venue),
		Centrality:    round2(centrality),
		RecencyFactor: round2(recency),
	}
	return round2(clamp(total, 0, 10)), dims, nil
}

// baseline is the metadata-only score for data-sparse papers: the venue
// term at full weight, nothing else to go on.
func (s *Scorer) baseline(dims Dimensions) float64 {
	return round2(clamp(dims.Venue, 0, 10))
}

// citationTerm normalizes the raw citation count against the strongest
// paper of the same publication-year cohort, log-scaled so accumulation
// time does not dominate, then applies recency decay.
func (s *Scorer) citationTerm(p *graph.Paper, recency float64) float64 {
	cohortMax := s.graph.CohortMaxCitations(p.Year)
	if cohortMax < p.CitationCount {
		cohortMax = p.CitationCount
	}
	if cohortMax == 0 {
		return 0
	}
	norm := math.Log1p(float64(p.CitationCount)) / math.Log1p(float64(cohortMax))
	return 10 * norm * recency
}

// recencyFactor is the half-life decay over paper age in years. Applied to
// the citation term only; other terms do not penalize age.
func (s *Scorer) recencyFactor(year int) float64 {
	age := float64(s.now().Year() - year)
	if age <= 0 {
		return 1
	}
	return math.Pow(0.5, age/s.cfg.RecencyHalfLifeYears)
}

// centralityTerm is an eigenvector-style measure over the incoming-citation
// subgraph bounded at depth 2: every citer contributes its own weight plus
// a damped share of its in-degree, so citers that are themselves highly
// cited count for more. A visited set keeps cyclic citation chains from
// double-counting.
func (s *Scorer) centralityTerm(paperID string, citers []string) float64 {
	const damping = 0.5

	visited := map[string]struct{}{paperID: {}}
	raw := 0.0
	for _, citer := range citers {
		if _, seen := visited[citer]; seen {
			continue
		}
		visited[citer] = struct{}{}

		secondHop, err := s.graph.IncomingCitations(citer)
		if err != nil {
			// Citer disappeared between reads; count its direct vote only.
			raw++
			continue
		}
		raw += 1 + damping*math.Log1p(float64(len(secondHop)))
	}
	if raw == 0 {
		return 0
	}
	// Saturating normalization onto [0, 10).
	return 10 * raw / (raw + s.cfg.CentralityScale)
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// timeNow is the clock indirection used by tests.
type timeNow func() time.Time
