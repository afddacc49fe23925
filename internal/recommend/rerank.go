// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import (
	"sort"
	"strings"
)

// Rerank scoring terms. The base score blends the caller's original
// ordering with truth value; the personalization terms shift it per
// matched signal.
const (
	rerankRankShare  = 0.5
	rerankTruthShare = 0.5

	rerankInterestBoost = 0.2
	rerankFollowBoost   = 0.4
	rerankReadPenalty   = 0.5
)

// RankedPaper is one entry of a reranked search result list.
type RankedPaper struct {
	PaperID string  `json:"paper_id"`
	Score   float64 `json:"score"`
}

// RerankSearch reorders a caller-supplied result list, typically full-text
// search hits, against the user's signals. The base score blends each
// paper's original position with its truth value; interest keywords and
// followed authors boost a paper, already-read papers are demoted. Ids the
// graph does not know keep only their positional score, so they degrade
// gracefully instead of vanishing from the result page.
func (e *Engine) RerankSearch(signal UserSignal, paperIDs []string) []RankedPaper {
	n := len(paperIDs)
	if n == 0 {
		return nil
	}

	interests := make([]string, 0, len(signal.Interests))
	for _, in := range signal.Interests {
		if in = strings.ToLower(strings.TrimSpace(in)); in != "" {
			interests = append(interests, in)
		}
	}
	follows := make(map[string]struct{}, len(signal.Follows))
	for _, id := range signal.Follows {
		follows[id] = struct{}{}
	}
	read := make(map[string]struct{}, len(signal.History))
	for _, h := range signal.History {
		read[h.PaperID] = struct{}{}
	}

	ranked := make([]RankedPaper, 0, n)
	seen := make(map[string]struct{}, n)
	for pos, id := range paperIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		// Positional score decays linearly from 1 at the top of the list.
		positional := 1 - float64(pos)/float64(n)
		score := rerankRankShare * positional
		if sc, err := e.truth.Score(id); err == nil {
			score += rerankTruthShare * (sc.Value / 10)
		}
		score += e.personalization(id, interests, follows, read)

		ranked = append(ranked, RankedPaper{PaperID: id, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PaperID < ranked[j].PaperID
	})
	return ranked
}

// personalization computes the signal-driven score shift of one paper.
// Unknown papers shift only by the read penalty, since their metadata is
// not available for matching.
func (e *Engine) personalization(id string, interests []string, follows, read map[string]struct{}) float64 {
	shift := 0.0
	if _, ok := read[id]; ok {
		shift -= rerankReadPenalty
	}

	p, err := e.graph.GetPaper(id)
	if err != nil {
		return shift
	}

	for _, interest := range interests {
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), interest) {
				shift += rerankInterestBoost
				break
			}
		}
	}
	for _, authorID := range p.AuthorIDs {
		if _, ok := follows[authorID]; ok {
			shift += rerankFollowBoost
		}
	}
	return shift
}
