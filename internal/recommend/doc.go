// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package recommend implements a hybrid recommendation engine for academic
// papers.
//
// # Architecture
//
// The engine fuses three candidate generators into one ranked list:
//
//   - Content similarity: similar papers seeded from the user's reading
//     history, weighted by the seed's recency
//   - Followed authors: recent papers by authors the user follows, at a
//     fixed direct-interest weight
//   - Citation propagation: papers citing the user's bookmarks, weighted
//     by the bookmark's truth value times a propagation decay
//
// Candidates are merged by paper id, and each merged weight is multiplied
// by the candidate's own truth value so low-credibility papers are
// down-ranked even when structurally close. Every result carries a single
// human-readable reason tag naming its strongest contributing source.
//
// # Design Principles
//
//   - Deterministic: same graph and signal set produce identical output
//   - Explainable: score fusion with fixed weights, no training step
//   - Ephemeral: results are recomputed per request, never persisted
//
// # Cold Start
//
// Users with empty signal sets receive a trending fallback, the
// top-truth-value papers published inside a bounded recent window, rather
// than an empty list.
//
// # Thread Safety
//
// The engine is read-only over the graph and safe for concurrent use. The
// three generators of one request run in parallel and all complete before
// merging.
package recommend
