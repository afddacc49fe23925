// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

/*
Package api implements the HTTP interface of the PaperLens engine.

# Overview

The package exposes the read surface (truth values, traversal, graph
export, authors, trending, recommendations, rerank, analytics), the
ingestion surface (paper/author upserts and citation edges), health
probes, and the Prometheus metrics endpoint. Routing is chi with
per-group middleware stacks: request-id propagation, security headers,
CORS, per-endpoint rate limits, and request metrics.

# Response Envelope

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": { ... },
	  "meta": {"timestamp": "...", "request_id": "..."}
	}

Errors carry a machine-readable code instead of data:

	{
	  "success": false,
	  "error": {"code": "NOT_FOUND", "message": "paper not found"}
	}

# Error Mapping

Domain errors map to transport codes in exactly one place (writeDomainError):
graph.ErrNotFound becomes 404, validation failures become 400, everything
else is a 500 with the detail logged, not leaked.

# Rate Limiting

Limits are per client IP and per route group. Health probes and analytics
run effectively unthrottled; the write (ingestion) group is the tightest.
*/
package api
