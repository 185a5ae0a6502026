// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is created lazily and shared; it caches struct
metadata, so reuse is cheap. Field names in error messages come from the
json tag, so clients see the same names they sent.

Custom tags:

  - price_range: Low, Medium or High (case-insensitive)
  - notblank: string is not empty after trimming whitespace

Example:

	type RecommendationRequest struct {
	    Cuisines    []string `json:"cuisines" validate:"dive,notblank,max=64"`
	    PriceRanges []string `json:"price_ranges" validate:"dive,price_range"`
	    TopN        int      `json:"top_n" validate:"min=1"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}
*/
package validation
