// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package graph

import "errors"

// Store errors. Callers match with errors.Is; the API layer maps
// ErrNotFound to a 404 response.
var (
	// ErrNotFound indicates an unknown paper or author id.
	ErrNotFound = errors.New("not found")

	// ErrSelfCitation indicates an attempted self-loop citation edge.
	ErrSelfCitation = errors.New("self-citation edge rejected")

	// ErrEmptyID indicates an entity or edge endpoint with an empty id.
	ErrEmptyID = errors.New("empty identifier")
)
