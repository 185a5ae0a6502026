// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/tablematch/internal/models"
)

// maxRequestBodyBytes bounds POST /api/v1/recommendations bodies.
const maxRequestBodyBytes = 64 << 10

// RecommendationRequest is the wire form of a ranking query.
// TopN is a pointer so an omitted value can be told apart from an explicit 0.
type RecommendationRequest struct {
	Cuisines    []string `json:"cuisines" validate:"max=50,dive,notblank,max=100"`
	PriceRanges []string `json:"price_ranges" validate:"max=3,dive,price_range"`
	Country     string   `json:"country" validate:"max=100"`
	TopN        *int     `json:"top_n" validate:"omitnil,min=1"`
}

// parseRecommendationParams reads a request from GET query parameters.
// cuisine and price may repeat and may each hold a comma-separated list.
func parseRecommendationParams(values url.Values) (RecommendationRequest, error) {
	req := RecommendationRequest{
		Cuisines:    splitParams(values["cuisine"]),
		PriceRanges: splitParams(values["price"]),
		Country:     values.Get("country"),
	}

	if raw := strings.TrimSpace(values.Get("top_n")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("top_n must be an integer, got %q", raw)
		}
		req.TopN = &n
	}
	return req, nil
}

func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// toQuery converts a validated request into a ranking query.
// Price ranges were checked by the price_range validator.
func (req *RecommendationRequest) toQuery(defaultTopN int) models.Query {
	q := models.Query{
		Cuisines:         req.Cuisines,
		CountrySubstring: req.Country,
		TopN:             defaultTopN,
	}
	if req.TopN != nil {
		q.TopN = *req.TopN
	}
	if len(req.PriceRanges) > 0 {
		q.PriceRanges = make([]models.PriceRange, 0, len(req.PriceRanges))
		for _, p := range req.PriceRanges {
			if pr, err := models.ParsePriceRange(p); err == nil {
				q.PriceRanges = append(q.PriceRanges, pr)
			}
		}
	}
	return q
}
