// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package recommend

import "time"

// ReasonTag is the fixed taxonomy of recommendation reasons.
type ReasonTag string

const (
	// ReasonContentSimilarity marks candidates found via similar-paper
	// search from the user's reading history.
	ReasonContentSimilarity ReasonTag = "content-similarity"

	// ReasonFollowedAuthor marks recent papers by followed authors.
	ReasonFollowedAuthor ReasonTag = "followed-author"

	// ReasonCitationPropagation marks papers citing the user's bookmarks.
	ReasonCitationPropagation ReasonTag = "citation-propagation"

	// ReasonTrending marks cold-start fallback results.
	ReasonTrending ReasonTag = "trending"
)

// HistoryEntry is one reading-history event.
type HistoryEntry struct {
	PaperID string    `json:"paper_id" validate:"required"`
	At      time.Time `json:"at" validate:"required"`
}

// UserSignal is the caller-owned interaction state, consumed read-only.
// The engine never mutates it.
type UserSignal struct {
	// Bookmarks are paper ids the user saved. Bookmarked papers are never
	// recommended back.
	Bookmarks []string `json:"bookmarks" validate:"dive,required"`

	// Follows are author ids the user follows.
	Follows []string `json:"follows" validate:"dive,required"`

	// History is the reading history in any order; the engine sorts it by
	// recency itself.
	History []HistoryEntry `json:"history" validate:"dive"`

	// Interests are free-form research-interest keywords, consumed only by
	// search reranking.
	Interests []string `json:"interests" validate:"dive,required"`
}

// Empty reports whether the signal set carries no usable evidence.
func (s UserSignal) Empty() bool {
	return len(s.Bookmarks) == 0 && len(s.Follows) == 0 && len(s.History) == 0
}

// Result is one recommendation. Ephemeral: recomputed per request, never
// persisted.
type Result struct {
	PaperID string  `json:"paper_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`

	// Reason is the single highest-weighted contributing source.
	Reason ReasonTag `json:"reason"`
}

// candidate accumulates per-source weights for one paper during fusion.
type candidate struct {
	weights map[ReasonTag]float64
}

func (c *candidate) total() float64 {
	sum := 0.0
	for _, w := range c.weights {
		sum += w
	}
	return sum
}

// topReason returns the highest-weighted source, ties broken by tag name
// for determinism.
func (c *candidate) topReason() ReasonTag {
	var best ReasonTag
	bestW := -1.0
	for tag, w := range c.weights {
		if w > bestW || (w == bestW && tag < best) {
			best, bestW = tag, w
		}
	}
	return best
}

// candidateSet is one generator's output, keyed by paper id.
type candidateSet map[string]*candidate

func (cs candidateSet) add(id string, reason ReasonTag, weight float64) {
	if weight <= 0 {
		return
	}
	c, ok := cs[id]
	if !ok {
		c = &candidate{weights: make(map[ReasonTag]float64, 2)}
		cs[id] = c
	}
	c.weights[reason] += weight
}

// merge folds other into cs, summing per-source weights.
func (cs candidateSet) merge(other candidateSet) {
	for id, oc := range other {
		for tag, w := range oc.weights {
			cs.add(id, tag, w)
		}
	}
}
