// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	json "github.com/goccy/go-json"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/logging"
)

// APIResponse is the uniform envelope for all JSON endpoints.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// APIMeta carries response metadata.
type APIMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Count     int       `json:"count,omitempty"`
}

// ResponseWriter writes envelope responses. A zero value is usable.
type ResponseWriter struct{}

// NewResponseWriter creates a response writer.
func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{}
}

func (rw *ResponseWriter) write(w http.ResponseWriter, r *http.Request, status int, resp APIResponse) {
	resp.Meta = &APIMeta{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if resp.Data != nil {
		// List payloads arrive as typed slices, so the element count has
		// to come from reflection rather than a type assertion.
		if v := reflect.ValueOf(resp.Data); v.Kind() == reflect.Slice {
			resp.Meta.Count = v.Len()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already out; all we can do is log.
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// Success writes a 200 envelope with the given payload.
func (rw *ResponseWriter) Success(w http.ResponseWriter, r *http.Request, data any) {
	rw.write(w, r, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Created writes a 201 envelope with the given payload.
func (rw *ResponseWriter) Created(w http.ResponseWriter, r *http.Request, data any) {
	rw.write(w, r, http.StatusCreated, APIResponse{Success: true, Data: data})
}

// Error writes an error envelope with the given status and code.
func (rw *ResponseWriter) Error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	rw.write(w, r, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// NotFound writes a 404 envelope.
func (rw *ResponseWriter) NotFound(w http.ResponseWriter, r *http.Request, message string) {
	rw.Error(w, r, http.StatusNotFound, ErrCodeNotFound, message)
}

// BadRequest writes a 400 envelope.
func (rw *ResponseWriter) BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	rw.Error(w, r, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// ValidationError writes a 400 envelope with the validation code.
func (rw *ResponseWriter) ValidationError(w http.ResponseWriter, r *http.Request, message string) {
	rw.Error(w, r, http.StatusBadRequest, ErrCodeValidation, message)
}

// InternalError writes a 500 envelope. The underlying error is logged,
// never sent to the client.
func (rw *ResponseWriter) InternalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("internal error")
	rw.Error(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

// DomainError maps domain errors to transport responses. This is the
// single place ErrNotFound becomes a 404.
func (rw *ResponseWriter) DomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		rw.NotFound(w, r, err.Error())
	case errors.Is(err, graph.ErrEmptyID), errors.Is(err, graph.ErrSelfCitation):
		rw.BadRequest(w, r, err.Error())
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrEmptyBody):
		rw.BadRequest(w, r, err.Error())
	default:
		rw.InternalError(w, r, err)
	}
}
