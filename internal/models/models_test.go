// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import (
	"errors"
	"testing"
)

func TestPriceRangeFor(t *testing.T) {
	tests := []struct {
		cost float64
		want PriceRange
	}{
		{0, PriceLow},
		{299, PriceLow},
		{299.99, PriceLow},
		{300, PriceMedium},
		{500, PriceMedium},
		{700, PriceMedium},
		{700.01, PriceHigh},
		{701, PriceHigh},
		{800000, PriceHigh},
	}

	for _, tt := range tests {
		if got := PriceRangeFor(tt.cost); got != tt.want {
			t.Errorf("PriceRangeFor(%v) = %v, want %v", tt.cost, got, tt.want)
		}
	}
}

func TestParsePriceRange(t *testing.T) {
	for _, in := range []string{"low", "LOW", " Low "} {
		got, err := ParsePriceRange(in)
		if err != nil || got != PriceLow {
			t.Errorf("ParsePriceRange(%q) = %v, %v; want Low", in, got, err)
		}
	}
	if _, err := ParsePriceRange("cheap"); err == nil {
		t.Error("ParsePriceRange(cheap) expected error")
	}
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
		field   string
	}{
		{"valid", Query{Cuisines: []string{"italian"}, PriceRanges: []PriceRange{PriceLow}, TopN: 5}, false, ""},
		{"empty sets are valid", Query{TopN: 1}, false, ""},
		{"zero top n", Query{TopN: 0}, true, "top_n"},
		{"negative top n", Query{TopN: -3}, true, "top_n"},
		{"unknown price", Query{PriceRanges: []PriceRange{"Cheap"}, TopN: 1}, true, "price_ranges"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("error %v does not wrap ErrInvalidQuery", err)
			}
			var qe *QueryError
			if !errors.As(err, &qe) || qe.Field != tt.field {
				t.Errorf("QueryError field = %v, want %s", qe, tt.field)
			}
		})
	}
}

func TestCountryKey(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{1, "1", true},
		{int64(216), "216", true},
		{1.0, "1", true},
		{" 14 ", "14", true},
		{"14.0", "14", true},
		{"IN", "IN", true},
		{"", "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		got, ok := CountryKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CountryKey(%#v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRawRecordKey(t *testing.T) {
	a := RawRecord{"Restaurant Name": "Tasty", "Votes": "10", "City": nil}
	b := RawRecord{"Votes": "10", "Restaurant Name": "Tasty"}
	c := RawRecord{"Restaurant Name": "Tasty", "Votes": "11"}

	if a.Key() != b.Key() {
		t.Errorf("records with same present fields should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Error("records with different values should not share a key")
	}
}

func TestRawRecordValue(t *testing.T) {
	r := RawRecord{"a": "  ", "b": nil, "c": " x "}
	if _, ok := r.Value("a"); ok {
		t.Error("blank string should be absent")
	}
	if _, ok := r.Value("b"); ok {
		t.Error("nil should be absent")
	}
	if _, ok := r.Value("missing"); ok {
		t.Error("missing key should be absent")
	}
	if got, ok := r.Text("c"); !ok || got != "x" {
		t.Errorf("Text(c) = %q, %v; want x, true", got, ok)
	}
}

func TestCanonicalRecord_Helpers(t *testing.T) {
	city := "Manila"
	r := CanonicalRecord{CuisineTags: []string{"italian", "pizza"}, City: &city}

	if got := r.PrimaryCuisine(); got != "italian" {
		t.Errorf("PrimaryCuisine() = %q, want italian", got)
	}
	if got := r.DisplayCity(); got != "Manila" {
		t.Errorf("DisplayCity() = %q, want Manila", got)
	}

	clone := r.Clone()
	clone.CuisineTags[0] = "changed"
	*clone.City = "Elsewhere"
	if r.CuisineTags[0] != "italian" || *r.City != "Manila" {
		t.Error("Clone() shares state with the original")
	}

	var empty CanonicalRecord
	if got := empty.DisplayCity(); got != UnknownCity {
		t.Errorf("DisplayCity() on absent city = %q, want %q", got, UnknownCity)
	}
	if got := empty.PrimaryCuisine(); got != "" {
		t.Errorf("PrimaryCuisine() on empty tags = %q, want empty", got)
	}
}
