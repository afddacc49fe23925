// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package traverse answers bounded, deterministic structural queries over
// the citation and collaboration graph: one-hop reference/citation lists,
// similar-paper search, and BFS subgraph export for visualization. All
// operations are read-only and total over cyclic graphs.
package traverse

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/truth"
)

// GraphReader is the read-only slice of the graph store this service needs.
type GraphReader interface {
	GetPaper(id string) (*graph.Paper, error)
	GetAuthor(id string) (*graph.Author, error)
	OutgoingCitations(id string) ([]string, error)
	IncomingCitations(id string) ([]string, error)
	CoAuthors(id string) ([]graph.Collaboration, error)
	PapersWithKeyword(keyword string) []string
}

// TruthReader supplies truth values for similarity tie-breaking.
type TruthReader interface {
	Score(paperID string) (truth.Score, error)
}

// Config contains traversal limits and similarity weights.
type Config struct {
	// SimilarK is the default result count for similar-paper queries.
	// Default: 10.
	SimilarK int `json:"similar_k" koanf:"similar_k"`

	// DepthCap is the hard bound on graph export depth. Requests beyond it
	// are clamped, not rejected. Default: 3.
	DepthCap int `json:"depth_cap" koanf:"depth_cap"`

	// DefaultDepth is used when the caller does not specify a depth.
	// Default: 2.
	DefaultDepth int `json:"default_depth" koanf:"default_depth"`

	// KeywordWeight, CoCiteWeight, and AuthorBonus weight the similarity
	// terms. Defaults: 0.5, 0.35, 0.15.
	KeywordWeight float64 `json:"keyword_weight" koanf:"keyword_weight"`
	CoCiteWeight  float64 `json:"cocite_weight" koanf:"cocite_weight"`
	AuthorBonus   float64 `json:"author_bonus" koanf:"author_bonus"`

	// MaxCandidates bounds the similarity candidate set on hub papers.
	// Default: 500.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		SimilarK:      10,
		DepthCap:      3,
		DefaultDepth:  2,
		KeywordWeight: 0.5,
		CoCiteWeight:  0.35,
		AuthorBonus:   0.15,
		MaxCandidates: 500,
	}
}

// Validate checks the configuration, failing fast at startup.
func (c Config) Validate() error {
	if c.SimilarK < 1 {
		return fmt.Errorf("traverse.similar_k must be positive, got %d", c.SimilarK)
	}
	if c.DepthCap < 1 || c.DepthCap > 3 {
		return fmt.Errorf("traverse.depth_cap must be in [1, 3], got %d", c.DepthCap)
	}
	if c.DefaultDepth < 0 || c.DefaultDepth > c.DepthCap {
		return fmt.Errorf("traverse.default_depth must be in [0, %d], got %d", c.DepthCap, c.DefaultDepth)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"keyword_weight", c.KeywordWeight},
		{"cocite_weight", c.CoCiteWeight},
		{"author_bonus", c.AuthorBonus},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("traverse.%s must be in [0, 1], got %f", w.name, w.value)
		}
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("traverse.max_candidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}

// Service executes traversal queries. Safe for concurrent use.
type Service struct {
	graph  GraphReader
	truth  TruthReader
	cfg    Config
	logger zerolog.Logger
}

// NewService creates a traversal service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(g GraphReader, tr TruthReader, cfg Config, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		graph:  g,
		truth:  tr,
		cfg:    cfg,
		logger: logger.With().Str("component", "traverse").Logger(),
	}, nil
}

// References returns the papers cited by the given paper, ordered by raw
// citation count descending, ties broken by id ascending.
func (s *Service) References(paperID string) ([]*graph.Paper, error) {
	ids, err := s.graph.OutgoingCitations(paperID)
	if err != nil {
		return nil, err
	}
	return s.resolveRanked(ids), nil
}

// Citations returns the papers citing the given paper, same ordering as
// References.
func (s *Service) Citations(paperID string) ([]*graph.Paper, error) {
	ids, err := s.graph.IncomingCitations(paperID)
	if err != nil {
		return nil, err
	}
	return s.resolveRanked(ids), nil
}

// resolveRanked loads papers by id and applies the one-hop ordering.
// Ids that vanished mid-ingestion are skipped.
func (s *Service) resolveRanked(ids []string) []*graph.Paper {
	papers := make([]*graph.Paper, 0, len(ids))
	for _, id := range ids {
		p, err := s.graph.GetPaper(id)
		if err != nil {
			continue
		}
		papers = append(papers, p)
	}
	sort.Slice(papers, func(i, j int) bool {
		if papers[i].CitationCount != papers[j].CitationCount {
			return papers[i].CitationCount > papers[j].CitationCount
		}
		return papers[i].ID < papers[j].ID
	})
	return papers
}
