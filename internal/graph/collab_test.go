// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestStore_CoAuthorsOrdering(t *testing.T) {
	s := NewStore()
	seedAuthors(t, s, "alice", "bob", "carol", "dave")

	// alice+bob twice, alice+carol once, alice+dave once.
	papers := []*Paper{
		{ID: "p1", Title: "p1", AuthorIDs: []string{"alice", "bob"}},
		{ID: "p2", Title: "p2", AuthorIDs: []string{"alice", "bob"}},
		{ID: "p3", Title: "p3", AuthorIDs: []string{"alice", "carol"}},
		{ID: "p4", Title: "p4", AuthorIDs: []string{"alice", "dave"}},
	}
	for _, p := range papers {
		if err := s.UpsertPaper(p); err != nil {
			t.Fatalf("UpsertPaper(%s) error = %v", p.ID, err)
		}
	}

	got, err := s.CoAuthors("alice")
	if err != nil {
		t.Fatalf("CoAuthors() error = %v", err)
	}
	want := []Collaboration{
		{AuthorID: "bob", Weight: 2},
		{AuthorID: "carol", Weight: 1}, // weight tie broken by id ascending
		{AuthorID: "dave", Weight: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoAuthors(alice) = %v, want %v", got, want)
	}
}

func TestStore_CoAuthorsUnknownAuthor(t *testing.T) {
	s := NewStore()
	if _, err := s.CoAuthors("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CoAuthors(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestStore_CollaborationDeltaOnReupsert(t *testing.T) {
	s := NewStore()
	seedAuthors(t, s, "alice", "bob", "carol")

	if err := s.UpsertPaper(&Paper{ID: "p1", Title: "p1", AuthorIDs: []string{"alice", "bob"}}); err != nil {
		t.Fatalf("UpsertPaper() error = %v", err)
	}
	// Re-upsert swaps bob for carol; the bob edge must disappear.
	if err := s.UpsertPaper(&Paper{ID: "p1", Title: "p1", AuthorIDs: []string{"alice", "carol"}}); err != nil {
		t.Fatalf("UpsertPaper() error = %v", err)
	}

	got, _ := s.CoAuthors("alice")
	want := []Collaboration{{AuthorID: "carol", Weight: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoAuthors(alice) after re-upsert = %v, want %v", got, want)
	}

	bob, _ := s.GetAuthor("bob")
	if bob.PaperCount != 0 {
		t.Errorf("bob.PaperCount = %d, want 0 after losing ownership", bob.PaperCount)
	}
}

func TestStore_AuthorMetrics(t *testing.T) {
	s := NewStore()
	seedAuthors(t, s, "alice")

	counts := []int{10, 8, 5, 4, 3}
	for i, c := range counts {
		p := &Paper{ID: string(rune('a' + i)), Title: "p", CitationCount: c, AuthorIDs: []string{"alice"}}
		if err := s.UpsertPaper(p); err != nil {
			t.Fatalf("UpsertPaper() error = %v", err)
		}
	}

	a, err := s.GetAuthor("alice")
	if err != nil {
		t.Fatalf("GetAuthor() error = %v", err)
	}
	if a.PaperCount != 5 {
		t.Errorf("PaperCount = %d, want 5", a.PaperCount)
	}
	if a.CitationTotal != 30 {
		t.Errorf("CitationTotal = %d, want 30", a.CitationTotal)
	}
	// counts 10,8,5,4,3: four papers have >= 4 citations.
	if a.HIndex != 4 {
		t.Errorf("HIndex = %d, want 4", a.HIndex)
	}
}

func TestStore_StubAuthorCreatedForUnknownID(t *testing.T) {
	s := NewStore()
	if err := s.UpsertPaper(&Paper{ID: "p1", Title: "p1", CitationCount: 3, AuthorIDs: []string{"late"}}); err != nil {
		t.Fatalf("UpsertPaper() error = %v", err)
	}

	a, err := s.GetAuthor("late")
	if err != nil {
		t.Fatalf("GetAuthor(late) error = %v, stub author expected", err)
	}
	if a.PaperCount != 1 || a.CitationTotal != 3 {
		t.Errorf("stub metrics = (%d papers, %d citations), want (1, 3)", a.PaperCount, a.CitationTotal)
	}

	// The later UpsertAuthor fills the name without clobbering metrics.
	if err := s.UpsertAuthor(&Author{ID: "late", Name: "Late Arrival"}); err != nil {
		t.Fatalf("UpsertAuthor() error = %v", err)
	}
	a, _ = s.GetAuthor("late")
	if a.Name != "Late Arrival" {
		t.Errorf("Name = %q, want %q", a.Name, "Late Arrival")
	}
	if a.PaperCount != 1 {
		t.Errorf("PaperCount = %d, want 1 after metadata upsert", a.PaperCount)
	}
}

func TestHIndex(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   int
	}{
		{name: "empty", counts: nil, want: 0},
		{name: "all zero", counts: []int{0, 0}, want: 0},
		{name: "classic", counts: []int{10, 8, 5, 4, 3}, want: 4},
		{name: "uniform", counts: []int{3, 3, 3}, want: 3},
		{name: "single high", counts: []int{100}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hIndex(tt.counts); got != tt.want {
				t.Errorf("hIndex(%v) = %d, want %d", tt.counts, got, tt.want)
			}
		})
	}
}

func seedAuthors(t *testing.T, s *Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := s.UpsertAuthor(&Author{ID: id, Name: id}); err != nil {
			t.Fatalf("UpsertAuthor(%s) error = %v", id, err)
		}
	}
}
