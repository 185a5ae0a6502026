// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column names of the source restaurant dataset.
const (
	FieldRestaurantID = "Restaurant ID"
	FieldName         = "Restaurant Name"
	FieldCountryCode  = "Country Code"
	FieldCity         = "City"
	FieldCuisines     = "Cuisines"
	FieldCostForTwo   = "Average Cost for two"
	FieldRating       = "Aggregate rating"
	FieldVotes        = "Votes"

	// FieldCountry is added by country enrichment.
	FieldCountry = "Country"
)

// UnknownCountry is the country name used when a code has no lookup entry.
const UnknownCountry = "Unknown"

// UnknownCity is the display value for records without a city.
const UnknownCity = "Unknown"

// MaxRating is the upper bound of the aggregate rating scale.
const MaxRating = 5.0

// RawRecord is one source row keyed by column name.
// Values are strings, integers, floats or nil. A nil value, a missing key
// and a blank string all mean the field is absent.
type RawRecord map[string]any

// Value returns the field value when present.
func (r RawRecord) Value(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// Text returns the field rendered as a trimmed string when present.
func (r RawRecord) Text(field string) (string, bool) {
	v, ok := r.Value(field)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(FormatValue(v)), true
}

// Clone returns a shallow copy; values are immutable scalars.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key returns a canonical encoding of every field, used for exact
// duplicate detection. Absent fields are skipped so that a missing key and
// an explicit nil compare equal.
func (r RawRecord) Key() string {
	fields := make([]string, 0, len(r))
	for k := range r {
		if _, ok := r.Value(k); ok {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, k := range fields {
		v := r[k]
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(fmt.Sprintf("%T:%s", v, strconv.Quote(FormatValue(v))))
		b.WriteByte(';')
	}
	return b.String()
}

// FormatValue renders a raw scalar without exponent notation for
// integral floats, so 1.0 and "1" produce the same country key.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return FormatValue(float64(x))
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// CountryLookup maps a country code key (see CountryKey) to a country name.
type CountryLookup map[string]string

// CountryKey normalizes a raw country code value ("1", 1, 1.0, " 1 ")
// into the key used by CountryLookup.
func CountryKey(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(FormatValue(v))
	if s == "" {
		return "", false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10), true
	}
	return s, true
}

// Resolve returns the country name for a raw code value.
func (l CountryLookup) Resolve(code any) (string, bool) {
	key, ok := CountryKey(code)
	if !ok {
		return "", false
	}
	name, ok := l[key]
	return name, ok
}

// CanonicalRecord is a restaurant after normalization.
type CanonicalRecord struct {
	// ID is the record's position in the ingested source (0-based) and
	// is unique within a dataset. Ranking ties are broken by ascending ID.
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	CuisineTags []string   `json:"cuisine_tags"`
	CountryName string     `json:"country"`
	City        *string    `json:"city,omitempty"`
	CostForTwo  float64    `json:"cost_for_two"`
	PriceRange  PriceRange `json:"price_range"`
	Rating      float64    `json:"rating"`
	Votes       int        `json:"votes"`
}

// PrimaryCuisine returns the first cuisine tag.
func (r *CanonicalRecord) PrimaryCuisine() string {
	if len(r.CuisineTags) == 0 {
		return ""
	}
	return r.CuisineTags[0]
}

// DisplayCity returns the city or UnknownCity when absent.
func (r *CanonicalRecord) DisplayCity() string {
	if r.City == nil || strings.TrimSpace(*r.City) == "" {
		return UnknownCity
	}
	return *r.City
}

// Clone returns a deep copy.
func (r *CanonicalRecord) Clone() CanonicalRecord {
	out := *r
	out.CuisineTags = append([]string(nil), r.CuisineTags...)
	if r.City != nil {
		city := *r.City
		out.City = &city
	}
	return out
}

// RankedResult is a canonical record with its ranking signals.
type RankedResult struct {
	CanonicalRecord
	NormalizedRating float64 `json:"normalized_rating"`
	NormalizedVotes  float64 `json:"normalized_votes"`
	Score            float64 `json:"score"`
}
