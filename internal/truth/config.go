// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package truth

import (
	"fmt"
	"time"
)

// Config contains the scoring weights and cache parameters.
//
// The three weights must each be in [0, 1] and sum to a positive total;
// they are renormalized to sum to 1.0 before use. Violations are fatal at
// construction, never at request time.
type Config struct {
	// CitationWeight is the weight of the cohort-normalized citation term.
	// Default: 0.45.
	CitationWeight float64 `json:"citation_weight" koanf:"citation_weight"`

	// VenueWeight is the weight of the venue-impact term.
	// Default: 0.25.
	VenueWeight float64 `json:"venue_weight" koanf:"venue_weight"`

	// CentralityWeight is the weight of the citation-network centrality term.
	// Default: 0.30.
	CentralityWeight float64 `json:"centrality_weight" koanf:"centrality_weight"`

	// RecencyHalfLifeYears is the half-life of the recency decay applied to
	// the citation term only. Default: 5.
	RecencyHalfLifeYears float64 `json:"recency_half_life_years" koanf:"recency_half_life_years"`

	// CentralityScale is the saturation constant of the centrality
	// normalization; larger values make high centrality harder to reach.
	// Default: 20.
	CentralityScale float64 `json:"centrality_scale" koanf:"centrality_scale"`

	// CacheTTL is how long a computed score stays fresh without an explicit
	// invalidation. Default: 15m.
	CacheTTL time.Duration `json:"cache_ttl" koanf:"cache_ttl"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CitationWeight:       0.45,
		VenueWeight:          0.25,
		CentralityWeight:     0.30,
		RecencyHalfLifeYears: 5,
		CentralityScale:      20,
		CacheTTL:             15 * time.Minute,
	}
}

// Validate checks the configuration, failing fast at startup.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"citation_weight", c.CitationWeight},
		{"venue_weight", c.VenueWeight},
		{"centrality_weight", c.CentralityWeight},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("truth.%s must be in [0, 1], got %f", w.name, w.value)
		}
	}
	if c.CitationWeight+c.VenueWeight+c.CentralityWeight <= 0 {
		return fmt.Errorf("truth weights must sum to a positive total")
	}
	if c.RecencyHalfLifeYears <= 0 {
		return fmt.Errorf("truth.recency_half_life_years must be positive, got %f", c.RecencyHalfLifeYears)
	}
	if c.CentralityScale <= 0 {
		return fmt.Errorf("truth.centrality_scale must be positive, got %f", c.CentralityScale)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("truth.cache_ttl must be positive, got %v", c.CacheTTL)
	}
	return nil
}

// normalized returns a copy with the three weights scaled to sum to 1.0.
func (c Config) normalized() Config {
	sum := c.CitationWeight + c.VenueWeight + c.CentralityWeight
	out := c
	out.CitationWeight /= sum
	out.VenueWeight /= sum
	out.CentralityWeight /= sum
	return out
}
