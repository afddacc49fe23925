// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package truth

// Distribution summarizes truth values across the whole corpus.
type Distribution struct {
	// Total is the number of scored papers.
	Total int `json:"total"`

	// Excellent counts scores >= 8.
	Excellent int `json:"excellent"`

	// Good counts scores in [6, 8).
	Good int `json:"good"`

	// Average counts scores in [4, 6).
	Average int `json:"average"`

	// Poor counts scores < 4.
	Poor int `json:"poor"`

	// AverageScore is the corpus mean, zero when the corpus is empty.
	AverageScore float64 `json:"average_score"`

	// MaxScore and MinScore bound the corpus, zero when empty.
	MaxScore float64 `json:"max_score"`
	MinScore float64 `json:"min_score"`
}

// Distribution scores every paper in the store and buckets the results.
// Intended for the analytics surface, not the request hot path.
func (s *Scorer) Distribution() Distribution {
	var d Distribution
	sum := 0.0

	for _, id := range s.graph.PaperIDs() {
		sc, err := s.Score(id)
		if err != nil {
			// Papers can vanish between listing and scoring during
			// ingestion; skip them.
			continue
		}

		if d.Total == 0 || sc.Value > d.MaxScore {
			d.MaxScore = sc.Value
		}
		if d.Total == 0 || sc.Value < d.MinScore {
			d.MinScore = sc.Value
		}
		d.Total++
		sum += sc.Value

		switch {
		case sc.Value >= 8:
			d.Excellent++
		case sc.Value >= 6:
			d.Good++
		case sc.Value >= 4:
			d.Average++
		default:
			d.Poor++
		}
	}

	if d.Total > 0 {
		d.AverageScore = round2(sum / float64(d.Total))
	}
	return d
}
