// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import "fmt"

// Query holds the hard filters and the number of results wanted.
//
// Cuisines and PriceRanges have set semantics. An empty set matches
// nothing; an empty CountrySubstring matches every country.
type Query struct {
	Cuisines         []string     `json:"cuisines"`
	PriceRanges      []PriceRange `json:"price_ranges"`
	CountrySubstring string       `json:"country"`
	TopN             int          `json:"top_n"`
}

// Validate checks TopN and the price range values.
// Empty cuisine or price sets are valid and simply match nothing.
func (q *Query) Validate() error {
	if q.TopN <= 0 {
		return &QueryError{Field: "top_n", Reason: fmt.Sprintf("must be a positive integer, got %d", q.TopN)}
	}
	for _, p := range q.PriceRanges {
		if !p.Valid() {
			return &QueryError{Field: "price_ranges", Reason: fmt.Sprintf("contains unknown value %q", string(p))}
		}
	}
	return nil
}
