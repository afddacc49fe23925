// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import "sort"

// Trending returns the top truth-value-scored papers published inside the
// configured recent window. Serves both the cold-start fallback and the
// public trending surface. Papers carry only a publication year, so the
// month window rounds up to whole years and always spans back at least one
// year beyond the current one; a window anchored to the current calendar
// year alone would go empty every January.
func (e *Engine) Trending(limit int) ([]Result, error) {
	if limit < 1 {
		limit = e.cfg.DefaultLimit
	}
	windowYears := (e.cfg.TrendingMonths + 11) / 12
	minYear := e.now().Year() - windowYears

	results := make([]Result, 0, limit)
	for _, id := range e.graph.PaperIDs() {
		p, err := e.graph.GetPaper(id)
		if err != nil || p.Year < minYear {
			continue
		}
		sc, err := e.truth.Score(id)
		if err != nil {
			continue
		}
		results = append(results, Result{
			PaperID: id,
			Title:   p.Title,
			Score:   sc.Value,
			Reason:  ReasonTrending,
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
	return results, nil
}
