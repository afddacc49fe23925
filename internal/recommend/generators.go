// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import (
	"context"
	"math"
	"sort"
)

// contentCandidates seeds similar-paper search from the user's reading
// history. The most recent entry carries full weight; each older entry is
// decayed by HistoryDecay per rank. Weight per candidate is the similarity
// score times the seed's recency weight.
func (e *Engine) contentCandidates(ctx context.Context, signal UserSignal) candidateSet {
	cs := make(candidateSet)
	if len(signal.History) == 0 {
		return cs
	}

	history := make([]HistoryEntry, len(signal.History))
	copy(history, signal.History)
	sort.Slice(history, func(i, j int) bool {
		if !history[i].At.Equal(history[j].At) {
			return history[i].At.After(history[j].At)
		}
		return history[i].PaperID < history[j].PaperID
	})
	if len(history) > e.cfg.MaxHistorySeeds {
		history = history[:e.cfg.MaxHistorySeeds]
	}

	for rank, entry := range history {
		if ctx.Err() != nil {
			return cs
		}
		recency := math.Pow(e.cfg.HistoryDecay, float64(rank))

		similar, err := e.similar.Similar(entry.PaperID, e.cfg.SimilarPerSeed)
		if err != nil {
			// History can reference papers that were since removed.
			continue
		}
		for _, sp := range similar {
			cs.add(sp.PaperID, ReasonContentSimilarity, sp.Similarity*recency)
		}
	}
	return cs
}

// followedAuthorCandidates emits recent papers by followed authors at a
// fixed weight. Recency is bounded by LookbackYears.
func (e *Engine) followedAuthorCandidates(ctx context.Context, signal UserSignal) candidateSet {
	cs := make(candidateSet)
	minYear := e.now().Year() - e.cfg.LookbackYears

	for _, authorID := range signal.Follows {
		if ctx.Err() != nil {
			return cs
		}
		paperIDs, err := e.graph.AuthorPapers(authorID)
		if err != nil {
			continue
		}
		for _, id := range paperIDs {
			p, err := e.graph.GetPaper(id)
			if err != nil || p.Year < minYear {
				continue
			}
			cs.add(id, ReasonFollowedAuthor, e.cfg.FollowWeight)
		}
	}
	return cs
}

// propagationCandidates walks one hop up the citation graph from each
// bookmark: papers citing what the user liked. Weight is the bookmark's
// truth value, normalized to [0, 1], times the propagation decay.
func (e *Engine) propagationCandidates(ctx context.Context, signal UserSignal) candidateSet {
	cs := make(candidateSet)

	for _, bookmarkID := range signal.Bookmarks {
		if ctx.Err() != nil {
			return cs
		}
		sc, err := e.truth.Score(bookmarkID)
		if err != nil {
			continue
		}
		citers, err := e.graph.IncomingCitations(bookmarkID)
		if err != nil {
			continue
		}

		weight := (sc.Value / 10) * e.cfg.PropagationDecay
		for _, citer := range citers {
			cs.add(citer, ReasonCitationPropagation, weight)
		}
	}
	return cs
}
