// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package filter

import (
	"errors"
	"fmt"
)

// Sentinel errors for filter operations.
var (
	// ErrInvalidCriteria is the base error for malformed filter criteria.
	// Wrapped by *ValidationError; match with errors.Is.
	ErrInvalidCriteria = errors.New("invalid filter criteria")

	// ErrNilSnapshot is returned when Filter is called without a snapshot.
	ErrNilSnapshot = errors.New("snapshot is nil")
)

// ValidationError describes a single malformed criteria field. It is
// surfaced synchronously, before any traversal begins.
type ValidationError struct {
	// Field is the criteria field that failed validation.
	Field string

	// Value is the offending value, if a single value can be named.
	Value string

	// Reason is a human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s: %q: %s", ErrInvalidCriteria, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidCriteria, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidCriteria for errors.Is support.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidCriteria
}
