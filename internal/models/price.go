// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import (
	"fmt"
	"strings"
)

// PriceRange buckets the average cost for two.
type PriceRange string

const (
	PriceLow    PriceRange = "Low"
	PriceMedium PriceRange = "Medium"
	PriceHigh   PriceRange = "High"
)

// Bucket thresholds. Medium covers LowPriceCeiling..HighPriceFloor inclusive.
const (
	LowPriceCeiling = 300.0
	HighPriceFloor  = 700.0
)

// PriceRanges lists every bucket in ascending order.
func PriceRanges() []PriceRange {
	return []PriceRange{PriceLow, PriceMedium, PriceHigh}
}

// PriceRangeFor maps a cost to its bucket: below 300 is Low, 300 through
// 700 is Medium, above 700 is High.
func PriceRangeFor(cost float64) PriceRange {
	switch {
	case cost < LowPriceCeiling:
		return PriceLow
	case cost <= HighPriceFloor:
		return PriceMedium
	default:
		return PriceHigh
	}
}

// Valid reports whether p is one of the defined buckets.
func (p PriceRange) Valid() bool {
	switch p {
	case PriceLow, PriceMedium, PriceHigh:
		return true
	}
	return false
}

// ParsePriceRange parses a bucket name case-insensitively.
func ParsePriceRange(s string) (PriceRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriceLow, nil
	case "medium":
		return PriceMedium, nil
	case "high":
		return PriceHigh, nil
	}
	return "", fmt.Errorf("unknown price range %q", s)
}
