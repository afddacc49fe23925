// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package graph

import "sort"

// applyAuthorshipDeltaLocked reconciles ownership and collaboration edges
// after a paper upsert. Only the authors present in the old or new author
// list are touched; nothing is recomputed from scratch.
func (s *Store) applyAuthorshipDeltaLocked(paperID string, oldAuthors, newAuthors []string) {
	oldSet := idSet(oldAuthors)
	newSet := idSet(newAuthors)

	// Drop stale ownership and pairwise weights from the old author list.
	for _, a := range oldAuthors {
		if _, kept := newSet[a]; !kept {
			s.authorPapers[a] = removeID(s.authorPapers[a], paperID)
		}
	}
	s.adjustCollabLocked(oldAuthors, -1)

	// Record new ownership, creating stub author records for authors the
	// ingestion collaborator has not sent yet (any call order is allowed).
	for _, a := range newAuthors {
		if _, ok := s.authors[a]; !ok {
			s.authors[a] = &Author{ID: a}
		}
		if _, owned := oldSet[a]; !owned {
			s.authorPapers[a] = append(s.authorPapers[a], paperID)
		}
	}
	s.adjustCollabLocked(newAuthors, +1)

	for a := range union(oldSet, newSet) {
		s.recomputeAuthorMetricsLocked(a)
	}
}

// adjustCollabLocked shifts the co-occurrence weight of every unordered
// author pair in the list by delta. Zero-weight edges are removed.
func (s *Store) adjustCollabLocked(authors []string, delta int) {
	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			a, b := authors[i], authors[j]
			if a == b {
				continue
			}
			s.bumpCollabLocked(a, b, delta)
			s.bumpCollabLocked(b, a, delta)
		}
	}
}

func (s *Store) bumpCollabLocked(a, b string, delta int) {
	m := s.collab[a]
	if m == nil {
		if delta <= 0 {
			return
		}
		m = make(map[string]int)
		s.collab[a] = m
	}
	m[b] += delta
	if m[b] <= 0 {
		delete(m, b)
		if len(m) == 0 {
			delete(s.collab, a)
		}
	}
}

// recomputeAuthorMetricsLocked rebuilds the derived metrics of one author
// from its owned papers: paper count, citation total, h-index.
func (s *Store) recomputeAuthorMetricsLocked(authorID string) {
	a, ok := s.authors[authorID]
	if !ok {
		return
	}

	owned := s.authorPapers[authorID]
	counts := make([]int, 0, len(owned))
	total := 0
	for _, pid := range owned {
		p, ok := s.papers[pid]
		if !ok {
			continue
		}
		counts = append(counts, p.CitationCount)
		total += p.CitationCount
	}

	a.PaperCount = len(counts)
	a.CitationTotal = total
	a.HIndex = hIndex(counts)
}

// hIndex returns the largest h such that h papers have at least h citations.
func hIndex(citationCounts []int) int {
	sorted := append([]int(nil), citationCounts...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	h := 0
	for i, c := range sorted {
		if c >= i+1 {
			h = i + 1
		} else {
			break
		}
	}
	return h
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func union(a, b map[string]struct{}) map[string]struct{} {
	u := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		u[k] = struct{}{}
	}
	for k := range b {
		u[k] = struct{}{}
	}
	return u
}
