// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import "errors"

// Error codes returned in the response envelope. These are part of the
// wire contract; clients branch on them.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Sentinel request errors, matched with errors.Is.
var (
	// ErrInvalidJSON indicates a request body that failed to decode.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrEmptyBody indicates a missing request body on a POST endpoint.
	ErrEmptyBody = errors.New("request body required")
)
