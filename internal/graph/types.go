// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package graph

// Paper is a node in the citation graph.
//
// Papers are created and updated only by the ingestion collaborator; the
// scorer and traversal layers read them and never mutate graph entities.
// Citation adjacency is held by the Store, not on the struct, so that edge
// lists can be swapped atomically under the store lock.
type Paper struct {
	// ID is the unique paper identifier (DOI, OpenAlex id, or portal id).
	ID string `json:"id" validate:"required"`

	// Title is the paper title.
	Title string `json:"title" validate:"required"`

	// Abstract is the paper abstract, possibly empty.
	Abstract string `json:"abstract,omitempty"`

	// Keywords is the keyword set as provided by ingestion.
	Keywords []string `json:"keywords,omitempty"`

	// Year is the publication year.
	Year int `json:"year" validate:"gte=0"`

	// Venue is the publication venue name.
	Venue string `json:"venue,omitempty"`

	// VenueWeight is the venue-impact proxy in [0, 1], set by ingestion
	// and treated as a trusted input.
	VenueWeight float64 `json:"venue_weight" validate:"gte=0,lte=1"`

	// CitationCount is the raw citation count reported by ingestion.
	// It may exceed the number of incoming edges when the citing papers
	// themselves are not in the portal.
	CitationCount int `json:"citation_count" validate:"gte=0"`

	// AuthorIDs lists author identifiers in authorship order.
	AuthorIDs []string `json:"author_ids,omitempty"`
}

// Author is a node in the collaboration graph.
//
// The aggregate metrics (PaperCount, CitationTotal, HIndex) are derived;
// the Store recomputes them whenever an owned paper changes.
type Author struct {
	// ID is the unique author identifier.
	ID string `json:"id" validate:"required"`

	// Name is the display name.
	Name string `json:"name" validate:"required"`

	// Affiliation is the author's institution, possibly empty.
	Affiliation string `json:"affiliation,omitempty"`

	// Areas is the research-area tag set.
	Areas []string `json:"areas,omitempty"`

	// PaperCount is the number of papers in the store listing this author.
	PaperCount int `json:"paper_count"`

	// CitationTotal is the sum of raw citation counts over owned papers.
	CitationTotal int `json:"citation_total"`

	// HIndex is the h-index over owned papers' raw citation counts.
	HIndex int `json:"h_index"`
}

// Collaboration is a weighted undirected co-authorship edge endpoint.
type Collaboration struct {
	// AuthorID is the co-author on the far end of the edge.
	AuthorID string `json:"author_id"`

	// Weight is the number of jointly authored papers.
	Weight int `json:"weight"`
}

// CitationEdge is a directed citation edge, unique per ordered pair.
type CitationEdge struct {
	// From is the citing paper.
	From string `json:"from"`

	// To is the cited paper.
	To string `json:"to"`
}

// clonePaper returns a deep copy safe to hand to concurrent readers.
func clonePaper(p *Paper) *Paper {
	cp := *p
	if p.Keywords != nil {
		cp.Keywords = append([]string(nil), p.Keywords...)
	}
	if p.AuthorIDs != nil {
		cp.AuthorIDs = append([]string(nil), p.AuthorIDs...)
	}
	return &cp
}

// cloneAuthor returns a deep copy safe to hand to concurrent readers.
func cloneAuthor(a *Author) *Author {
	ca := *a
	if a.Areas != nil {
		ca.Areas = append([]string(nil), a.Areas...)
	}
	return &ca
}
