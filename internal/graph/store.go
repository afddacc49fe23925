// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package graph holds the canonical in-memory citation and collaboration
// graph. The store is read-mostly: traversal and scoring read concurrently
// while an infrequent ingestion process mutates. Every ingestion unit (one
// entity plus its edge effects) is applied inside a single write-lock
// critical section, so readers observe it entirely or not at all.
package graph

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// InvalidationHook is notified with the id of every paper whose cached
// truth score became stale after a mutation. Hooks run outside the store
// lock and must not mutate the store.
type InvalidationHook func(paperID string)

// Store is the canonical graph representation.
//
// Identifier lookup is O(1); neighbor enumeration is O(degree) and
// preserves insertion order, which is the discovery order at ingestion.
type Store struct {
	mu sync.RWMutex

	papers  map[string]*Paper
	authors map[string]*Author

	// Citation adjacency, insertion-ordered.
	out map[string][]string
	in  map[string][]string

	// edges is the set of all accepted citation edges, including parked
	// ones, and is what makes AddCitationEdge idempotent.
	edges map[CitationEdge]struct{}

	// pending parks edges whose endpoints are not all ingested yet,
	// keyed by a missing endpoint id.
	pending map[string][]CitationEdge

	// authorPapers maps author id to owned paper ids, insertion-ordered.
	authorPapers map[string][]string

	// collab holds derived co-authorship weights, maintained incrementally
	// from the affected-authors delta of each paper upsert.
	collab map[string]map[string]int

	// cohortMax tracks the maximum raw citation count per publication
	// year, consumed by the scorer for cohort normalization. byYear holds
	// the members of each publication-year cohort, insertion-ordered, so a
	// rising maximum can invalidate every score normalized against it.
	cohortMax map[int]int
	byYear    map[int][]string

	// keywords maps lowercased keyword to paper ids, insertion-ordered.
	keywords map[string][]string

	hooks []InvalidationHook
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{
		papers:       make(map[string]*Paper),
		authors:      make(map[string]*Author),
		out:          make(map[string][]string),
		in:           make(map[string][]string),
		edges:        make(map[CitationEdge]struct{}),
		pending:      make(map[string][]CitationEdge),
		authorPapers: make(map[string][]string),
		collab:       make(map[string]map[string]int),
		cohortMax:    make(map[int]int),
		byYear:       make(map[int][]string),
		keywords:     make(map[string][]string),
	}
}

// RegisterInvalidationHook adds a staleness hook. Typically called once by
// the scorer at construction, before ingestion starts.
func (s *Store) RegisterInvalidationHook(h InvalidationHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// GetPaper returns a copy of the paper or ErrNotFound.
func (s *Store) GetPaper(id string) (*Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.papers[id]
	if !ok {
		return nil, fmt.Errorf("paper %q: %w", id, ErrNotFound)
	}
	return clonePaper(p), nil
}

// GetAuthor returns a copy of the author or ErrNotFound.
func (s *Store) GetAuthor(id string) (*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, fmt.Errorf("author %q: %w", id, ErrNotFound)
	}
	return cloneAuthor(a), nil
}

// HasPaper reports whether the paper id is known.
func (s *Store) HasPaper(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.papers[id]
	return ok
}

// HasAuthor reports whether the author id is known.
func (s *Store) HasAuthor(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.authors[id]
	return ok
}

// OutgoingCitations returns the ids of papers cited by the given paper,
// in edge insertion order.
func (s *Store) OutgoingCitations(paperID string) ([]string, error) {
	return s.neighbors(paperID, s.out)
}

// IncomingCitations returns the ids of papers citing the given paper,
// in edge insertion order.
func (s *Store) IncomingCitations(paperID string) ([]string, error) {
	return s.neighbors(paperID, s.in)
}

func (s *Store) neighbors(paperID string, adj map[string][]string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.papers[paperID]; !ok {
		return nil, fmt.Errorf("paper %q: %w", paperID, ErrNotFound)
	}
	return append([]string(nil), adj[paperID]...), nil
}

// CoAuthors returns the collaboration edges of an author, weight-descending
// with ties broken by author id ascending.
func (s *Store) CoAuthors(authorID string) ([]Collaboration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.authors[authorID]; !ok {
		return nil, fmt.Errorf("author %q: %w", authorID, ErrNotFound)
	}

	edges := make([]Collaboration, 0, len(s.collab[authorID]))
	for id, w := range s.collab[authorID] {
		edges = append(edges, Collaboration{AuthorID: id, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		return edges[i].AuthorID < edges[j].AuthorID
	})
	return edges, nil
}

// AuthorPapers returns the ids of papers listing the author, in ingestion
// order, or ErrNotFound for an unknown author.
func (s *Store) AuthorPapers(authorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.authors[authorID]; !ok {
		return nil, fmt.Errorf("author %q: %w", authorID, ErrNotFound)
	}
	return append([]string(nil), s.authorPapers[authorID]...), nil
}

// PapersWithKeyword returns the ids of papers tagged with the keyword
// (case-insensitive), in ingestion order.
func (s *Store) PapersWithKeyword(keyword string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keywords[normalizeKeyword(keyword)]...)
}

// CohortMaxCitations returns the maximum raw citation count among papers
// published in the given year, or zero when the cohort is empty.
func (s *Store) CohortMaxCitations(year int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cohortMax[year]
}

// PaperIDs returns all paper ids sorted ascending. Intended for bulk
// consumers (trending, score distribution); per-node queries should use the
// adjacency accessors instead.
func (s *Store) PaperIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.papers))
	for id := range s.papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AuthorIDs returns all author ids, sorted for deterministic iteration.
func (s *Store) AuthorIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.authors))
	for id := range s.authors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stats reports entity and edge counts.
func (s *Store) Stats() (papers, authors, citationEdges int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.papers), len(s.authors), len(s.edges)
}

// PendingEdges reports the number of parked forward-reference edges. An
// edge parked on both missing endpoints counts once.
func (s *Store) PendingEdges() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[CitationEdge]struct{})
	for _, edges := range s.pending {
		for _, e := range edges {
			seen[e] = struct{}{}
		}
	}
	return len(seen)
}

// CitationEdges returns all accepted citation edges, including parked ones,
// sorted for determinism. Used by the snapshot layer.
func (s *Store) CitationEdges() []CitationEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]CitationEdge, 0, len(s.edges))
	for e := range s.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// UpsertPaper inserts or replaces a paper and applies all derived effects
// (keyword index, cohort maximum, author ownership, collaboration weights,
// author metrics, parked edge resolution) as one atomic unit.
func (s *Store) UpsertPaper(p *Paper) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("upsert paper: %w", ErrEmptyID)
	}

	s.mu.Lock()

	old := s.papers[p.ID]
	stored := clonePaper(p)
	s.papers[p.ID] = stored

	s.updateKeywordIndexLocked(p.ID, old, stored)
	s.updateYearIndexLocked(p.ID, old, stored)
	cohortRaised := s.updateCohortMaxLocked(stored)

	var oldAuthors []string
	if old != nil {
		oldAuthors = old.AuthorIDs
	}
	s.applyAuthorshipDeltaLocked(p.ID, oldAuthors, stored.AuthorIDs)
	s.resolvePendingLocked(p.ID)

	stale := s.affectedByPaperLocked(p.ID)
	if cohortRaised {
		// A new cohort maximum changes the normalization denominator of
		// every paper published the same year.
		stale = append(stale, s.byYear[stored.Year]...)
	}
	s.mu.Unlock()

	s.notifyStale(stale)
	return nil
}

// UpsertAuthor inserts or updates an author's intrinsic fields. Derived
// metrics are preserved across upserts and recomputed from owned papers.
func (s *Store) UpsertAuthor(a *Author) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("upsert author: %w", ErrEmptyID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneAuthor(a)
	if old, ok := s.authors[a.ID]; ok {
		stored.PaperCount = old.PaperCount
		stored.CitationTotal = old.CitationTotal
		stored.HIndex = old.HIndex
	}
	s.authors[a.ID] = stored
	s.recomputeAuthorMetricsLocked(a.ID)
	return nil
}

// AddCitationEdge records a directed citation edge. Adding an existing edge
// is a no-op. Edges referencing not-yet-ingested papers are parked and
// resolved when the missing endpoint arrives.
func (s *Store) AddCitationEdge(fromID, toID string) error {
	if fromID == "" || toID == "" {
		return fmt.Errorf("citation edge: %w", ErrEmptyID)
	}
	if fromID == toID {
		return fmt.Errorf("citation edge %q: %w", fromID, ErrSelfCitation)
	}

	edge := CitationEdge{From: fromID, To: toID}

	s.mu.Lock()
	if _, exists := s.edges[edge]; exists {
		s.mu.Unlock()
		return nil
	}
	s.edges[edge] = struct{}{}

	var stale []string
	if s.linkIfResolvableLocked(edge) {
		stale = s.affectedByEdgeLocked(edge)
	}
	s.mu.Unlock()

	s.notifyStale(stale)
	return nil
}

// linkIfResolvableLocked wires the edge into the adjacency lists when both
// endpoints are ingested, otherwise parks it under each missing endpoint.
// Returns whether the edge was linked.
func (s *Store) linkIfResolvableLocked(edge CitationEdge) bool {
	_, haveFrom := s.papers[edge.From]
	_, haveTo := s.papers[edge.To]
	if haveFrom && haveTo {
		s.out[edge.From] = append(s.out[edge.From], edge.To)
		s.in[edge.To] = append(s.in[edge.To], edge.From)
		return true
	}

	if !haveFrom {
		s.pending[edge.From] = append(s.pending[edge.From], edge)
	}
	if !haveTo {
		s.pending[edge.To] = append(s.pending[edge.To], edge)
	}
	return false
}

// resolvePendingLocked links parked edges that became resolvable because
// the given paper id arrived.
func (s *Store) resolvePendingLocked(paperID string) {
	parked := s.pending[paperID]
	if len(parked) == 0 {
		return
	}
	delete(s.pending, paperID)

	for _, edge := range parked {
		other := edge.From
		if other == paperID {
			other = edge.To
		}
		if _, ok := s.papers[other]; !ok {
			// Still parked under the other endpoint.
			continue
		}
		s.out[edge.From] = append(s.out[edge.From], edge.To)
		s.in[edge.To] = append(s.in[edge.To], edge.From)
	}
}

// affectedByPaperLocked lists papers whose cached score is invalidated by
// an upsert of the given paper: the paper itself (citation count or venue
// weight may have changed) and the papers it cites, whose depth-2
// centrality depends on this paper's in-degree.
func (s *Store) affectedByPaperLocked(paperID string) []string {
	affected := append([]string{paperID}, s.out[paperID]...)
	return affected
}

// affectedByEdgeLocked lists papers invalidated by a new edge from->to:
// both endpoints plus the papers cited by the target, whose depth-2
// centrality counts the target's citers.
func (s *Store) affectedByEdgeLocked(edge CitationEdge) []string {
	affected := []string{edge.From, edge.To}
	affected = append(affected, s.out[edge.To]...)
	return affected
}

func (s *Store) notifyStale(paperIDs []string) {
	if len(paperIDs) == 0 {
		return
	}

	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()

	seen := make(map[string]struct{}, len(paperIDs))
	for _, id := range paperIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		for _, h := range hooks {
			h(id)
		}
	}
}

func (s *Store) updateKeywordIndexLocked(paperID string, old, cur *Paper) {
	if old != nil {
		for _, kw := range old.Keywords {
			key := normalizeKeyword(kw)
			s.keywords[key] = removeID(s.keywords[key], paperID)
			if len(s.keywords[key]) == 0 {
				delete(s.keywords, key)
			}
		}
	}
	for _, kw := range cur.Keywords {
		key := normalizeKeyword(kw)
		if key == "" || containsID(s.keywords[key], paperID) {
			continue
		}
		s.keywords[key] = append(s.keywords[key], paperID)
	}
}

// updateYearIndexLocked maintains cohort membership across year changes.
func (s *Store) updateYearIndexLocked(paperID string, old, cur *Paper) {
	if old != nil && old.Year != cur.Year {
		s.byYear[old.Year] = removeID(s.byYear[old.Year], paperID)
		if len(s.byYear[old.Year]) == 0 {
			delete(s.byYear, old.Year)
		}
	}
	if !containsID(s.byYear[cur.Year], paperID) {
		s.byYear[cur.Year] = append(s.byYear[cur.Year], paperID)
	}
}

// updateCohortMaxLocked maintains the per-year citation maximum, reporting
// whether it rose. The maximum only ratchets upward; ingestion never lowers
// citation counts.
func (s *Store) updateCohortMaxLocked(cur *Paper) bool {
	if cur.CitationCount > s.cohortMax[cur.Year] {
		s.cohortMax[cur.Year] = cur.CitationCount
		return true
	}
	return false
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
