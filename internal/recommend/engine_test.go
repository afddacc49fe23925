// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/traverse"
	"github.com/paperlens/paperlens/internal/truth"
)

func newTestEngine(t *testing.T, g *graph.Store, mutate func(*Config)) *Engine {
	t.Helper()
	scorer, err := truth.NewScorer(g, truth.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewScorer() error = %v", err)
	}
	trav, err := traverse.NewService(g, scorer, traverse.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("traverse.NewService() error = %v", err)
	}
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := NewEngine(g, trav, scorer, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func mustUpsert(t *testing.T, g *graph.Store, papers ...*graph.Paper) {
	t.Helper()
	for _, p := range papers {
		if p.Title == "" {
			p.Title = p.ID
		}
		if p.Year == 0 {
			p.Year = 2025
		}
		if err := g.UpsertPaper(p); err != nil {
			t.Fatalf("UpsertPaper(%s) error = %v", p.ID, err)
		}
	}
}

func TestNewEngine_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: nil, wantErr: false},
		{name: "zero limit", mutate: func(c *Config) { c.DefaultLimit = 0 }, wantErr: true},
		{name: "decay above one", mutate: func(c *Config) { c.HistoryDecay = 1.5 }, wantErr: true},
		{name: "negative follow weight", mutate: func(c *Config) { c.FollowWeight = -0.1 }, wantErr: true},
		{name: "zero lookback", mutate: func(c *Config) { c.LookbackYears = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			_, err := NewEngine(graph.NewStore(), nil, nil, cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecommend_FollowedAuthorAppearsWithReason(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "fresh", Year: 2026, AuthorIDs: []string{"prof"}, CitationCount: 5},
		&graph.Paper{ID: "ancient", Year: 2010, AuthorIDs: []string{"prof"}, CitationCount: 50},
		&graph.Paper{ID: "unrelated", Year: 2026, AuthorIDs: []string{"nobody"}, CitationCount: 3},
	)

	e := newTestEngine(t, g, nil)
	got, err := e.Recommend(context.Background(), UserSignal{Follows: []string{"prof"}}, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var fresh *Result
	for i := range got {
		if got[i].PaperID == "fresh" {
			fresh = &got[i]
		}
		if got[i].PaperID == "ancient" {
			t.Error("paper outside the lookback window was recommended")
		}
	}
	if fresh == nil {
		t.Fatal("recent paper by followed author missing from recommendations")
	}
	if fresh.Reason != ReasonFollowedAuthor {
		t.Errorf("Reason = %q, want %q", fresh.Reason, ReasonFollowedAuthor)
	}
	if fresh.Score <= 0 {
		t.Errorf("Score = %f, want positive", fresh.Score)
	}
}

func TestRecommend_NeverReturnsBookmarks(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "liked", CitationCount: 10},
		&graph.Paper{ID: "citer-a", CitationCount: 4},
		&graph.Paper{ID: "citer-b", CitationCount: 2},
	)
	for _, from := range []string{"citer-a", "citer-b"} {
		if err := g.AddCitationEdge(from, "liked"); err != nil {
			t.Fatal(err)
		}
	}

	e := newTestEngine(t, g, nil)
	signal := UserSignal{Bookmarks: []string{"liked", "citer-a"}}
	got, err := e.Recommend(context.Background(), signal, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	foundB := false
	for _, r := range got {
		if r.PaperID == "liked" || r.PaperID == "citer-a" {
			t.Errorf("bookmarked paper %s was recommended", r.PaperID)
		}
		if r.PaperID == "citer-b" {
			foundB = true
			if r.Reason != ReasonCitationPropagation {
				t.Errorf("Reason = %q, want %q", r.Reason, ReasonCitationPropagation)
			}
		}
	}
	if !foundB {
		t.Error("one-hop citer of a bookmark missing from recommendations")
	}
}

func TestRecommend_EmptySignalFallsBackToTrending(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "hot", Year: 2026, CitationCount: 80, VenueWeight: 0.9},
		&graph.Paper{ID: "warm", Year: 2026, CitationCount: 8, VenueWeight: 0.3},
		&graph.Paper{ID: "stale", Year: 2019, CitationCount: 900, VenueWeight: 1},
	)

	e := newTestEngine(t, g, nil)
	got, err := e.Recommend(context.Background(), UserSignal{}, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("empty signal set produced an empty list, want trending fallback")
	}
	for _, r := range got {
		if r.Reason != ReasonTrending {
			t.Errorf("fallback reason = %q, want %q", r.Reason, ReasonTrending)
		}
		if r.PaperID == "stale" {
			t.Error("paper outside the trending window in fallback results")
		}
	}
	if got[0].PaperID != "hot" {
		t.Errorf("top trending = %s, want hot", got[0].PaperID)
	}
}

func TestTrending_WindowSpansPreviousYear(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "this-year", Year: 2026, CitationCount: 30, VenueWeight: 0.8},
		&graph.Paper{ID: "last-year", Year: 2025, CitationCount: 20, VenueWeight: 0.6},
		&graph.Paper{ID: "old", Year: 2023, CitationCount: 500, VenueWeight: 1},
	)

	// The clock sits mid-2026; a twelve-month window reaches into 2025,
	// so early-calendar-year requests are not starved of candidates.
	e := newTestEngine(t, g, nil)
	got, err := e.Trending(10)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}

	ids := make(map[string]bool, len(got))
	for _, r := range got {
		ids[r.PaperID] = true
	}
	if !ids["this-year"] || !ids["last-year"] {
		t.Errorf("trending ids = %v, want both this-year and last-year", ids)
	}
	if ids["old"] {
		t.Error("paper two years outside the window in trending results")
	}
}

func TestRecommend_ContentCandidatesFromHistory(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "read", Keywords: []string{"graphs", "ranking"}, CitationCount: 5},
		&graph.Paper{ID: "akin", Keywords: []string{"graphs", "ranking"}, CitationCount: 7},
	)
	if err := g.AddCitationEdge("akin", "read"); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, g, nil)
	signal := UserSignal{History: []HistoryEntry{{PaperID: "read", At: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}}}
	got, err := e.Recommend(context.Background(), signal, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	found := false
	for _, r := range got {
		if r.PaperID == "akin" {
			found = true
		}
		if r.PaperID == "read" {
			// History is not excluded by contract, but similar-paper search
			// never returns its own seed.
			t.Error("history seed recommended via its own similarity query")
		}
	}
	if !found {
		t.Error("keyword-similar paper missing from content candidates")
	}
}

func TestRecommend_DeterministicOrdering(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "liked", CitationCount: 10},
		&graph.Paper{ID: "x1", CitationCount: 3},
		&graph.Paper{ID: "x2", CitationCount: 3},
		&graph.Paper{ID: "x3", CitationCount: 3},
	)
	for _, from := range []string{"x2", "x3", "x1"} {
		if err := g.AddCitationEdge(from, "liked"); err != nil {
			t.Fatal(err)
		}
	}

	e := newTestEngine(t, g, nil)
	signal := UserSignal{Bookmarks: []string{"liked"}}

	first, err := e.Recommend(context.Background(), signal, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Recommend(context.Background(), signal, 10)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result count changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].PaperID != first[j].PaperID {
				t.Fatalf("ordering changed between runs at %d: %s vs %s", j, again[j].PaperID, first[j].PaperID)
			}
		}
	}

	// Equal-score candidates must come back id-ascending.
	for i := 1; i < len(first); i++ {
		if first[i].Score == first[i-1].Score && first[i].PaperID < first[i-1].PaperID {
			t.Errorf("tie not broken by id: %s before %s", first[i-1].PaperID, first[i].PaperID)
		}
	}
}

func TestRecommend_LimitRespected(t *testing.T) {
	g := graph.NewStore()
	papers := []*graph.Paper{{ID: "liked", CitationCount: 10}}
	edges := [][2]string{}
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5"} {
		papers = append(papers, &graph.Paper{ID: id, CitationCount: 1})
		edges = append(edges, [2]string{id, "liked"})
	}
	mustUpsert(t, g, papers...)
	for _, e := range edges {
		if err := g.AddCitationEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}

	e := newTestEngine(t, g, nil)
	got, err := e.Recommend(context.Background(), UserSignal{Bookmarks: []string{"liked"}}, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Recommend(limit=2) returned %d results", len(got))
	}
}

func TestRerankSearch_TruthLiftsLowRankedPapers(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "weak", Year: 2025, CitationCount: 0, VenueWeight: 0.1},
		&graph.Paper{ID: "strong", Year: 2025, CitationCount: 200, VenueWeight: 1},
	)
	if err := g.AddCitationEdge("weak", "strong"); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, g, nil)
	got := e.RerankSearch(UserSignal{}, []string{"weak", "strong"})
	if len(got) != 2 {
		t.Fatalf("RerankSearch() returned %d entries, want 2", len(got))
	}
	if got[0].PaperID != "strong" {
		t.Errorf("RerankSearch()[0] = %s, want strong lifted above weak", got[0].PaperID)
	}
}

func TestRerankSearch_SignalsPersonalize(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "followed", Year: 2025, CitationCount: 5, VenueWeight: 0.5, AuthorIDs: []string{"fav"}},
		&graph.Paper{ID: "topical", Year: 2025, CitationCount: 5, VenueWeight: 0.5, Keywords: []string{"Graph Neural Networks"}},
		&graph.Paper{ID: "already-read", Year: 2025, CitationCount: 5, VenueWeight: 0.5},
	)

	e := newTestEngine(t, g, nil)
	signal := UserSignal{
		Follows:   []string{"fav"},
		Interests: []string{"graph neural"},
		History:   []HistoryEntry{{PaperID: "already-read", At: time.Now()}},
	}

	got := e.RerankSearch(signal, []string{"already-read", "topical", "followed"})
	if len(got) != 3 {
		t.Fatalf("RerankSearch() = %d entries, want 3", len(got))
	}
	// The follow boost (0.4) outweighs the interest boost (0.2); the read
	// paper drops to the bottom despite its top original position.
	if got[0].PaperID != "followed" {
		t.Errorf("top = %s, want followed", got[0].PaperID)
	}
	if got[2].PaperID != "already-read" {
		t.Errorf("bottom = %s, want already-read demoted", got[2].PaperID)
	}
}

func TestRerankSearch_UnknownIdsDegrade(t *testing.T) {
	e := newTestEngine(t, graph.NewStore(), nil)
	got := e.RerankSearch(UserSignal{}, []string{"ghost-1", "ghost-2", "ghost-1"})
	if len(got) != 2 {
		t.Fatalf("RerankSearch() = %d entries, want duplicates collapsed to 2", len(got))
	}
	if got[0].PaperID != "ghost-1" {
		t.Errorf("positional order lost for unknown ids: got %s first", got[0].PaperID)
	}
}
