// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package traverse

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/truth"
)

// stubTruth returns fixed scores so tests control tie-breaking exactly.
type stubTruth struct {
	values map[string]float64
}

func (s *stubTruth) Score(paperID string) (truth.Score, error) {
	v, ok := s.values[paperID]
	if !ok {
		return truth.Score{}, graph.ErrNotFound
	}
	return truth.Score{PaperID: paperID, Value: v, Confidence: truth.ConfidenceNormal}, nil
}

func newTestService(t *testing.T, g GraphReader, tr TruthReader) *Service {
	t.Helper()
	if tr == nil {
		tr = &stubTruth{}
	}
	s, err := NewService(g, tr, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s
}

func mustUpsert(t *testing.T, g *graph.Store, papers ...*graph.Paper) {
	t.Helper()
	for _, p := range papers {
		if p.Title == "" {
			p.Title = p.ID
		}
		if p.Year == 0 {
			p.Year = 2020
		}
		if err := g.UpsertPaper(p); err != nil {
			t.Fatalf("UpsertPaper(%s) error = %v", p.ID, err)
		}
	}
}

func mustCite(t *testing.T, g *graph.Store, edges ...[2]string) {
	t.Helper()
	for _, e := range edges {
		if err := g.AddCitationEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddCitationEdge(%s, %s) error = %v", e[0], e[1], err)
		}
	}
}

func TestReferences_RankedByCitationCount(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "root"},
		&graph.Paper{ID: "busy", CitationCount: 40},
		&graph.Paper{ID: "quiet", CitationCount: 2},
		&graph.Paper{ID: "tied-b", CitationCount: 10},
		&graph.Paper{ID: "tied-a", CitationCount: 10},
	)
	mustCite(t, g,
		[2]string{"root", "quiet"},
		[2]string{"root", "tied-b"},
		[2]string{"root", "busy"},
		[2]string{"root", "tied-a"},
	)

	s := newTestService(t, g, nil)
	refs, err := s.References("root")
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}

	want := []string{"busy", "tied-a", "tied-b", "quiet"}
	if len(refs) != len(want) {
		t.Fatalf("References() returned %d papers, want %d", len(refs), len(want))
	}
	for i, p := range refs {
		if p.ID != want[i] {
			t.Errorf("References()[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestCitations_UnknownPaper(t *testing.T) {
	s := newTestService(t, graph.NewStore(), nil)
	if _, err := s.Citations("ghost"); !errors.Is(err, graph.ErrNotFound) {
		t.Errorf("Citations(ghost) error = %v, want ErrNotFound", err)
	}
	if _, err := s.References("ghost"); !errors.Is(err, graph.ErrNotFound) {
		t.Errorf("References(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestSimilar_CoCitedAndKeywords(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "target", Keywords: []string{"graphs", "ranking", "search"}},
		// Co-cited with target twice plus full keyword overlap.
		&graph.Paper{ID: "twin", Keywords: []string{"Graphs", "Ranking", "Search"}},
		// One shared citer only, no keywords.
		&graph.Paper{ID: "cousin"},
		// Two shared keywords, no shared citers.
		&graph.Paper{ID: "topical", Keywords: []string{"graphs", "ranking", "databases"}},
		// One shared keyword only: below the two-keyword floor, no citers.
		&graph.Paper{ID: "stranger", Keywords: []string{"graphs"}},
		&graph.Paper{ID: "citer1"},
		&graph.Paper{ID: "citer2"},
	)
	mustCite(t, g,
		[2]string{"citer1", "target"},
		[2]string{"citer2", "target"},
		[2]string{"citer1", "twin"},
		[2]string{"citer2", "twin"},
		[2]string{"citer1", "cousin"},
	)

	s := newTestService(t, g, nil)
	got, err := s.Similar("target", 10)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.PaperID
		if r.PaperID == "target" {
			t.Fatal("Similar() included the target paper")
		}
		if r.PaperID == "stranger" {
			t.Error("Similar() included single-keyword non-co-cited paper")
		}
	}

	if len(got) < 3 {
		t.Fatalf("Similar() = %v, want at least twin, topical, cousin", ids)
	}
	if got[0].PaperID != "twin" {
		t.Errorf("Similar()[0] = %s, want twin (keyword + co-citation overlap)", got[0].PaperID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("Similar() not sorted: %v", got)
		}
	}
}

func TestSimilar_TruthBreaksTies(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "target", Keywords: []string{"a", "b"}},
		&graph.Paper{ID: "left", Keywords: []string{"a", "b"}},
		&graph.Paper{ID: "right", Keywords: []string{"a", "b"}},
	)

	tr := &stubTruth{values: map[string]float64{"left": 3.0, "right": 7.5}}
	s := newTestService(t, g, tr)

	got, err := s.Similar("target", 2)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Similar() returned %d results, want 2", len(got))
	}
	if got[0].PaperID != "right" || got[1].PaperID != "left" {
		t.Errorf("tie order = [%s, %s], want [right, left]", got[0].PaperID, got[1].PaperID)
	}
}

func TestSimilar_RespectsK(t *testing.T) {
	g := graph.NewStore()
	papers := []*graph.Paper{{ID: "target", Keywords: []string{"x", "y"}}}
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5"} {
		papers = append(papers, &graph.Paper{ID: id, Keywords: []string{"x", "y"}})
	}
	mustUpsert(t, g, papers...)

	s := newTestService(t, g, nil)
	got, err := s.Similar("target", 3)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Similar(k=3) returned %d results", len(got))
	}
}

func TestExport_DepthClampAndCycle(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "a"},
		&graph.Paper{ID: "b"},
		&graph.Paper{ID: "c"},
	)
	// a -> b -> c -> a is a citation cycle.
	mustCite(t, g, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})

	s := newTestService(t, g, nil)

	// Depth 99 clamps to the cap; BFS must terminate on the cycle.
	exp, err := s.Export("a", 99)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if exp.Depth != DefaultConfig().DepthCap {
		t.Errorf("Depth = %d, want clamped to %d", exp.Depth, DefaultConfig().DepthCap)
	}
	if len(exp.Nodes) != 3 {
		t.Errorf("Nodes = %d, want 3", len(exp.Nodes))
	}
	if len(exp.Edges) != 3 {
		t.Errorf("Edges = %d, want all 3 cycle edges", len(exp.Edges))
	}
	for _, e := range exp.Edges {
		if e.Kind != EdgeKindCitation {
			t.Errorf("edge kind = %q, want %q", e.Kind, EdgeKindCitation)
		}
	}
}

func TestExport_DepthZeroIsRootOnly(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g, &graph.Paper{ID: "a"}, &graph.Paper{ID: "b"})
	mustCite(t, g, [2]string{"a", "b"})

	s := newTestService(t, g, nil)
	exp, err := s.Export("a", 0)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(exp.Nodes) != 1 || exp.Nodes[0].ID != "a" {
		t.Errorf("depth-0 export nodes = %v, want only the root", exp.Nodes)
	}
	if len(exp.Edges) != 0 {
		t.Errorf("depth-0 export edges = %d, want 0", len(exp.Edges))
	}
}

func TestExport_NegativeDepth(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g, &graph.Paper{ID: "a"}, &graph.Paper{ID: "b"}, &graph.Paper{ID: "c"})
	// a -> b -> c is a chain deep enough for the default depth to matter.
	mustCite(t, g, [2]string{"a", "b"}, [2]string{"b", "c"})

	s := newTestService(t, g, nil)

	// DepthDefault selects the configured default depth.
	exp, err := s.Export("a", DepthDefault)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if exp.Depth != DefaultConfig().DefaultDepth {
		t.Errorf("Depth = %d, want default %d", exp.Depth, DefaultConfig().DefaultDepth)
	}

	// Any other negative depth clamps to zero, root only.
	exp, err = s.Export("a", -2)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if exp.Depth != 0 {
		t.Errorf("Depth = %d, want explicit negative clamped to 0", exp.Depth)
	}
	if len(exp.Nodes) != 1 || exp.Nodes[0].ID != "a" {
		t.Errorf("negative-depth export nodes = %v, want only the root", exp.Nodes)
	}
}

func TestExport_AuthorRoot(t *testing.T) {
	g := graph.NewStore()
	mustUpsert(t, g,
		&graph.Paper{ID: "p1", AuthorIDs: []string{"alice", "bob"}},
		&graph.Paper{ID: "p2", AuthorIDs: []string{"alice", "bob"}},
		&graph.Paper{ID: "p3", AuthorIDs: []string{"bob", "carol"}},
	)

	s := newTestService(t, g, nil)
	exp, err := s.Export("alice", 2)
	if err != nil {
		t.Fatalf("Export(alice) error = %v", err)
	}

	if len(exp.Nodes) != 3 {
		t.Fatalf("author export nodes = %d, want alice, bob, carol", len(exp.Nodes))
	}
	for _, n := range exp.Nodes {
		if n.Type != NodeTypeAuthor {
			t.Errorf("node %s type = %q, want %q", n.ID, n.Type, NodeTypeAuthor)
		}
	}

	// alice-bob weight 2, bob-carol weight 1, emitted once each.
	if len(exp.Edges) != 2 {
		t.Fatalf("author export edges = %d, want 2", len(exp.Edges))
	}
	for _, e := range exp.Edges {
		if e.Kind != EdgeKindCollaboration {
			t.Errorf("edge kind = %q, want %q", e.Kind, EdgeKindCollaboration)
		}
		if e.Source == "alice" && e.Target == "bob" && e.Weight != 2 {
			t.Errorf("alice-bob weight = %f, want 2", e.Weight)
		}
	}
}

func TestExport_UnknownRoot(t *testing.T) {
	s := newTestService(t, graph.NewStore(), nil)
	if _, err := s.Export("nobody", 1); !errors.Is(err, graph.ErrNotFound) {
		t.Errorf("Export(nobody) error = %v, want ErrNotFound", err)
	}
}
