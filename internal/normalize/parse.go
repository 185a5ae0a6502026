// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/tablematch/internal/models"
)

var (
	errNotNumeric = errors.New("not numeric")
	errOutOfRange = errors.New("out of range")
	errNotInteger = errors.New("not an integer")
	errNotFinite  = errors.New("not finite")
)

// parseNumber converts a raw scalar to a finite float64.
// Strings must be plain decimal notation with an optional exponent;
// thousands separators, hex forms and inf/nan spellings are rejected.
func parseNumber(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if !isDecimal(s) {
			return 0, fmt.Errorf("%q: %w", x, errNotNumeric)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", x, errNotNumeric)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%T: %w", v, errNotNumeric)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

// isDecimal reports whether s only uses the characters of decimal float
// notation. strconv.ParseFloat also accepts hex, underscores, inf and nan.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '+', r == '-', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}

// parseCost returns a non-negative cost for two.
func parseCost(v any) (float64, error) {
	cost, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if cost < 0 {
		return 0, fmt.Errorf("cost %v: %w", cost, errOutOfRange)
	}
	return cost, nil
}

// parseRating returns a rating within [0, models.MaxRating].
// Out-of-range ratings are rejected rather than clamped.
func parseRating(v any) (float64, error) {
	rating, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if rating < 0 || rating > models.MaxRating {
		return 0, fmt.Errorf("rating %v: %w", rating, errOutOfRange)
	}
	return rating, nil
}

// parseVotes returns a non-negative integer vote count. Absent votes are 0.
func parseVotes(v any, present bool) (int, error) {
	if !present {
		return 0, nil
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("votes %v: %w", f, errNotInteger)
	}
	if f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("votes %v: %w", f, errOutOfRange)
	}
	return int(f), nil
}
