// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import "fmt"

// Config contains the score-fusion weights and bounds of the
// recommendation engine.
type Config struct {
	// DefaultLimit is the result count when the caller does not ask for a
	// specific one. Default: 20.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// HistoryDecay is the per-rank recency decay on history seeds: the most
	// recent entry keeps weight 1, each older entry multiplies by
	// HistoryDecay again. Default: 0.85.
	HistoryDecay float64 `json:"history_decay" koanf:"history_decay"`

	// MaxHistorySeeds bounds how many recent history entries seed the
	// content generator. Default: 10.
	MaxHistorySeeds int `json:"max_history_seeds" koanf:"max_history_seeds"`

	// SimilarPerSeed is how many similar papers each history seed pulls.
	// Default: 10.
	SimilarPerSeed int `json:"similar_per_seed" koanf:"similar_per_seed"`

	// FollowWeight is the fixed weight of a followed-author candidate, a
	// direct-interest signal independent of similarity. Default: 0.6.
	FollowWeight float64 `json:"follow_weight" koanf:"follow_weight"`

	// LookbackYears bounds followed-author candidates to recent work.
	// Default: 2.
	LookbackYears int `json:"lookback_years" koanf:"lookback_years"`

	// PropagationDecay scales a bookmark's truth value down for its
	// one-hop citation candidates. Default: 0.5.
	PropagationDecay float64 `json:"propagation_decay" koanf:"propagation_decay"`

	// TrendingMonths is the publication window of the trending fallback.
	// Default: 12.
	TrendingMonths int `json:"trending_months" koanf:"trending_months"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:     20,
		HistoryDecay:     0.85,
		MaxHistorySeeds:  10,
		SimilarPerSeed:   10,
		FollowWeight:     0.6,
		LookbackYears:    2,
		PropagationDecay: 0.5,
		TrendingMonths:   12,
	}
}

// Validate checks the configuration, failing fast at startup.
func (c Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("recommend.default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.HistoryDecay <= 0 || c.HistoryDecay > 1 {
		return fmt.Errorf("recommend.history_decay must be in (0, 1], got %f", c.HistoryDecay)
	}
	if c.MaxHistorySeeds < 1 {
		return fmt.Errorf("recommend.max_history_seeds must be positive, got %d", c.MaxHistorySeeds)
	}
	if c.SimilarPerSeed < 1 {
		return fmt.Errorf("recommend.similar_per_seed must be positive, got %d", c.SimilarPerSeed)
	}
	if c.FollowWeight < 0 || c.FollowWeight > 1 {
		return fmt.Errorf("recommend.follow_weight must be in [0, 1], got %f", c.FollowWeight)
	}
	if c.LookbackYears < 1 {
		return fmt.Errorf("recommend.lookback_years must be positive, got %d", c.LookbackYears)
	}
	if c.PropagationDecay < 0 || c.PropagationDecay > 1 {
		return fmt.Errorf("recommend.propagation_decay must be in [0, 1], got %f", c.PropagationDecay)
	}
	if c.TrendingMonths < 1 {
		return fmt.Errorf("recommend.trending_months must be positive, got %d", c.TrendingMonths)
	}
	return nil
}
