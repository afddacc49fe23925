// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// maxBodyBytes bounds request bodies. Ingestion payloads are single
// entities, so 1 MiB is generous.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dst and validates it.
func (rt *Router) decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	if err := rt.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidJSON, validationMessage(verrs))
		}
		return fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	return nil
}

// validationMessage flattens validator errors into one client-facing line.
func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
