// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package traverse

import (
	"sort"
	"strings"

	"github.com/paperlens/paperlens/internal/graph"
)

// SimilarPaper is one similar-paper result.
type SimilarPaper struct {
	// PaperID identifies the similar paper.
	PaperID string `json:"paper_id"`

	// Title is carried for display.
	Title string `json:"title"`

	// Similarity is the weighted Jaccard score in [0, 1].
	Similarity float64 `json:"similarity"`
}

// Similar returns up to k papers similar to the target, never including the
// target itself. Candidates are papers co-cited with the target (sharing at
// least one citer) or sharing at least two keywords; each candidate is
// scored by a weighted Jaccard over keyword overlap and co-citation overlap
// plus a shared-author bonus. Results are sorted similarity-descending with
// ties broken by truth value then paper id.
func (s *Service) Similar(paperID string, k int) ([]SimilarPaper, error) {
	target, err := s.graph.GetPaper(paperID)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = s.cfg.SimilarK
	}

	targetCiters, err := s.graph.IncomingCitations(paperID)
	if err != nil {
		return nil, err
	}

	candidates := s.collectCandidates(target, targetCiters)

	targetKeywords := keywordSet(target.Keywords)
	targetCiterSet := idSet(targetCiters)
	targetAuthors := idSet(target.AuthorIDs)

	scored := make([]SimilarPaper, 0, len(candidates))
	truthTie := make(map[string]float64, len(candidates))
	for _, id := range candidates {
		cand, err := s.graph.GetPaper(id)
		if err != nil {
			continue
		}

		sim := s.similarity(cand, targetKeywords, targetCiterSet, targetAuthors)
		if sim <= 0 {
			continue
		}
		scored = append(scored, SimilarPaper{PaperID: cand.ID, Title: cand.Title, Similarity: sim})
		if sc, err := s.truth.Score(cand.ID); err == nil {
			truthTie[cand.ID] = sc.Value
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		if ti, tj := truthTie[scored[i].PaperID], truthTie[scored[j].PaperID]; ti != tj {
			return ti > tj
		}
		return scored[i].PaperID < scored[j].PaperID
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// collectCandidates gathers the co-cited and keyword-sharing candidate ids
// in deterministic discovery order, bounded by MaxCandidates.
func (s *Service) collectCandidates(target *graph.Paper, targetCiters []string) []string {
	seen := map[string]struct{}{target.ID: {}}
	var ordered []string

	add := func(id string) bool {
		if _, dup := seen[id]; dup {
			return len(ordered) < s.cfg.MaxCandidates
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
		return len(ordered) < s.cfg.MaxCandidates
	}

	// Co-cited: papers sharing at least one incoming citer with the target.
	for _, citer := range targetCiters {
		coCited, err := s.graph.OutgoingCitations(citer)
		if err != nil {
			continue
		}
		for _, id := range coCited {
			if !add(id) {
				return ordered
			}
		}
	}

	// Keyword-share: papers sharing at least two keywords with the target.
	counts := make(map[string]int)
	var keywordOrder []string
	for _, kw := range target.Keywords {
		for _, id := range s.graph.PapersWithKeyword(kw) {
			if id == target.ID {
				continue
			}
			if counts[id] == 0 {
				keywordOrder = append(keywordOrder, id)
			}
			counts[id]++
		}
	}
	for _, id := range keywordOrder {
		if counts[id] < 2 {
			continue
		}
		if !add(id) {
			return ordered
		}
	}
	return ordered
}

// similarity computes the weighted candidate score against precomputed
// target sets.
func (s *Service) similarity(cand *graph.Paper, targetKeywords, targetCiters, targetAuthors map[string]struct{}) float64 {
	sim := s.cfg.KeywordWeight * jaccard(targetKeywords, keywordSet(cand.Keywords))

	candCiters, err := s.graph.IncomingCitations(cand.ID)
	if err == nil {
		sim += s.cfg.CoCiteWeight * jaccard(targetCiters, idSet(candCiters))
	}

	for _, a := range cand.AuthorIDs {
		if _, shared := targetAuthors[a]; shared {
			sim += s.cfg.AuthorBonus
			break
		}
	}
	return sim
}

// jaccard is |a ∩ b| / |a ∪ b|, zero when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for k := range small {
		if _, ok := large[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func keywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			set[kw] = struct{}{}
		}
	}
	return set
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
