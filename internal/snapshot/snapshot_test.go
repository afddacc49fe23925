// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package snapshot

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func seedGraph(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.NewStore()

	papers := []*graph.Paper{
		{ID: "p1", Title: "First", Year: 2024, VenueWeight: 0.8, CitationCount: 12, Keywords: []string{"graphs"}, AuthorIDs: []string{"a1", "a2"}},
		{ID: "p2", Title: "Second", Year: 2025, VenueWeight: 0.6, CitationCount: 3, AuthorIDs: []string{"a1"}},
	}
	for _, p := range papers {
		if err := g.UpsertPaper(p); err != nil {
			t.Fatalf("UpsertPaper(%s) error = %v", p.ID, err)
		}
	}
	for _, a := range []*graph.Author{{ID: "a1", Name: "Ada"}, {ID: "a2", Name: "Ben"}} {
		if err := g.UpsertAuthor(a); err != nil {
			t.Fatalf("UpsertAuthor(%s) error = %v", a.ID, err)
		}
	}
	if err := g.AddCitationEdge("p2", "p1"); err != nil {
		t.Fatalf("AddCitationEdge() error = %v", err)
	}
	// Forward reference: p3 is not ingested, the edge parks.
	if err := g.AddCitationEdge("p1", "p3"); err != nil {
		t.Fatalf("AddCitationEdge() error = %v", err)
	}
	return g
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	g := seedGraph(t)

	if err := s.Save(g); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored := graph.NewStore()
	if err := s.Load(restored); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	papers, authors, edges := restored.Stats()
	if papers != 2 || authors != 2 || edges != 2 {
		t.Errorf("restored stats = (%d, %d, %d), want (2, 2, 2)", papers, authors, edges)
	}

	p, err := restored.GetPaper("p1")
	if err != nil {
		t.Fatalf("GetPaper(p1) error = %v", err)
	}
	if p.Title != "First" || p.CitationCount != 12 {
		t.Errorf("restored paper = %+v", p)
	}
	if len(p.Keywords) != 1 || p.Keywords[0] != "graphs" {
		t.Errorf("restored keywords = %v, want [graphs]", p.Keywords)
	}

	citers, err := restored.IncomingCitations("p1")
	if err != nil {
		t.Fatalf("IncomingCitations(p1) error = %v", err)
	}
	if len(citers) != 1 || citers[0] != "p2" {
		t.Errorf("citers of p1 = %v, want [p2]", citers)
	}

	// The forward-reference edge parked again.
	if got := restored.PendingEdges(); got != 1 {
		t.Errorf("pending edges = %d, want 1", got)
	}
}

func TestLoad_ParkedEdgeResolvesAfterRestore(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(seedGraph(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored := graph.NewStore()
	if err := s.Load(restored); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := restored.UpsertPaper(&graph.Paper{ID: "p3", Title: "Third", Year: 2026}); err != nil {
		t.Fatalf("UpsertPaper(p3) error = %v", err)
	}
	refs, err := restored.OutgoingCitations("p1")
	if err != nil {
		t.Fatalf("OutgoingCitations(p1) error = %v", err)
	}
	if len(refs) != 1 || refs[0] != "p3" {
		t.Errorf("references of p1 = %v, want [p3]", refs)
	}
	if got := restored.PendingEdges(); got != 0 {
		t.Errorf("pending edges = %d, want 0", got)
	}
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(seedGraph(t)); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	// Second snapshot from a smaller graph must not leak stale records.
	small := graph.NewStore()
	if err := small.UpsertPaper(&graph.Paper{ID: "only", Title: "Only", Year: 2026}); err != nil {
		t.Fatalf("UpsertPaper() error = %v", err)
	}
	if err := s.Save(small); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	restored := graph.NewStore()
	if err := s.Load(restored); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	papers, authors, edges := restored.Stats()
	if papers != 1 || authors != 0 || edges != 0 {
		t.Errorf("restored stats = (%d, %d, %d), want (1, 0, 0)", papers, authors, edges)
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	restored := graph.NewStore()
	if err := s.Load(restored); err != nil {
		t.Fatalf("Load() on empty database error = %v", err)
	}
	papers, authors, edges := restored.Stats()
	if papers != 0 || authors != 0 || edges != 0 {
		t.Errorf("stats = (%d, %d, %d), want all zero", papers, authors, edges)
	}
}
