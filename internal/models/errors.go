// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned when a query is malformed.
var ErrInvalidQuery = errors.New("invalid query")

// QueryError describes which query field is invalid.
type QueryError struct {
	Field  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query: %s %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidQuery).
func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}
