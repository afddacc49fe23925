// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package traverse

import (
	"sort"

	"github.com/paperlens/paperlens/internal/graph"
)

// Node types and edge kinds in a graph export.
const (
	NodeTypePaper  = "paper"
	NodeTypeAuthor = "author"

	EdgeKindCitation      = "citation"
	EdgeKindCollaboration = "collaboration"
)

// ExportNode is a node in an exported subgraph.
type ExportNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ExportEdge is an edge in an exported subgraph. Citation edges are
// directed source-to-target with weight 1; collaboration edges carry the
// shared-paper count and are emitted once with Source < Target.
type ExportEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

// GraphExport is a BFS-bounded subgraph rooted at a single node, shaped
// for front-end visualization.
type GraphExport struct {
	Root  string       `json:"root"`
	Depth int          `json:"depth"`
	Nodes []ExportNode `json:"nodes"`
	Edges []ExportEdge `json:"edges"`
}

// DepthDefault requests the configured default export depth.
const DepthDefault = -1

// Export walks the graph breadth-first from the given node and returns the
// induced subgraph. Paper roots traverse citation edges in both directions;
// author roots traverse collaboration edges. DepthDefault selects the
// configured default depth; every other value is clamped to [0, DepthCap],
// so an explicit negative depth exports the root node alone. Cycles
// terminate via the visited set. Returns graph.ErrNotFound when the root is
// neither a paper nor an author.
func (s *Service) Export(nodeID string, depth int) (*GraphExport, error) {
	if depth == DepthDefault {
		depth = s.cfg.DefaultDepth
	}
	if depth < 0 {
		depth = 0
	}
	if depth > s.cfg.DepthCap {
		depth = s.cfg.DepthCap
	}

	if p, err := s.graph.GetPaper(nodeID); err == nil {
		return s.exportPapers(p, depth)
	}
	if a, err := s.graph.GetAuthor(nodeID); err == nil {
		return s.exportAuthors(a, depth)
	}
	return nil, graph.ErrNotFound
}

func (s *Service) exportPapers(root *graph.Paper, depth int) (*GraphExport, error) {
	exp := &GraphExport{Root: root.ID, Depth: depth}
	visited := map[string]struct{}{root.ID: {}}
	exp.Nodes = append(exp.Nodes, ExportNode{ID: root.ID, Type: NodeTypePaper, Label: root.Title})

	frontier := []string{root.ID}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			out, err := s.graph.OutgoingCitations(id)
			if err != nil {
				continue
			}
			in, err := s.graph.IncomingCitations(id)
			if err != nil {
				continue
			}

			for _, ref := range out {
				if s.admitPaper(exp, visited, ref) {
					next = append(next, ref)
				}
			}
			for _, citer := range in {
				if s.admitPaper(exp, visited, citer) {
					next = append(next, citer)
				}
			}
		}
		frontier = next
	}

	s.induceCitationEdges(exp, visited)
	return exp, nil
}

// admitPaper adds a newly discovered paper node, reporting whether it was
// unseen. Ids that vanished mid-ingestion are dropped.
func (s *Service) admitPaper(exp *GraphExport, visited map[string]struct{}, id string) bool {
	if _, seen := visited[id]; seen {
		return false
	}
	p, err := s.graph.GetPaper(id)
	if err != nil {
		return false
	}
	visited[id] = struct{}{}
	exp.Nodes = append(exp.Nodes, ExportNode{ID: p.ID, Type: NodeTypePaper, Label: p.Title})
	return true
}

// induceCitationEdges emits every citation edge whose endpoints are both in
// the visited set, deduplicated and deterministically ordered.
func (s *Service) induceCitationEdges(exp *GraphExport, visited map[string]struct{}) {
	seen := make(map[[2]string]struct{})
	for id := range visited {
		out, err := s.graph.OutgoingCitations(id)
		if err != nil {
			continue
		}
		for _, ref := range out {
			if _, ok := visited[ref]; !ok {
				continue
			}
			key := [2]string{id, ref}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			exp.Edges = append(exp.Edges, ExportEdge{Source: id, Target: ref, Kind: EdgeKindCitation, Weight: 1})
		}
	}
	sortEdges(exp.Edges)
}

func (s *Service) exportAuthors(root *graph.Author, depth int) (*GraphExport, error) {
	exp := &GraphExport{Root: root.ID, Depth: depth}
	visited := map[string]struct{}{root.ID: {}}
	exp.Nodes = append(exp.Nodes, ExportNode{ID: root.ID, Type: NodeTypeAuthor, Label: root.Name})

	frontier := []string{root.ID}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			collabs, err := s.graph.CoAuthors(id)
			if err != nil {
				continue
			}
			for _, c := range collabs {
				if _, seen := visited[c.AuthorID]; seen {
					continue
				}
				a, err := s.graph.GetAuthor(c.AuthorID)
				if err != nil {
					continue
				}
				visited[a.ID] = struct{}{}
				exp.Nodes = append(exp.Nodes, ExportNode{ID: a.ID, Type: NodeTypeAuthor, Label: a.Name})
				next = append(next, a.ID)
			}
		}
		frontier = next
	}

	// Induce collaboration edges, each undirected pair emitted once.
	seen := make(map[[2]string]struct{})
	for id := range visited {
		collabs, err := s.graph.CoAuthors(id)
		if err != nil {
			continue
		}
		for _, c := range collabs {
			if _, ok := visited[c.AuthorID]; !ok {
				continue
			}
			lo, hi := id, c.AuthorID
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]string{lo, hi}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			exp.Edges = append(exp.Edges, ExportEdge{Source: lo, Target: hi, Kind: EdgeKindCollaboration, Weight: float64(c.Weight)})
		}
	}
	sortEdges(exp.Edges)
	return exp, nil
}

func sortEdges(edges []ExportEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}
