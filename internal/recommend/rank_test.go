// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/tablematch/internal/models"
)

const epsilon = 1e-9

func rec(id int, name, cuisine string, price models.PriceRange, country string, rating float64, votes int) models.CanonicalRecord {
	return models.CanonicalRecord{
		ID:          id,
		Name:        name,
		CuisineTags: []string{cuisine, "cafe"},
		CountryName: country,
		PriceRange:  price,
		Rating:      rating,
		Votes:       votes,
	}
}

func names(results []models.RankedResult) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].Name
	}
	return out
}

func TestRank_WorkedExample(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "A", "italian", models.PriceHigh, "India", 4.5, 800),
		rec(1, "B", "italian", models.PriceHigh, "India", 4.0, 1000),
	}
	q := models.Query{
		Cuisines:         []string{"italian"},
		PriceRanges:      []models.PriceRange{models.PriceHigh},
		CountrySubstring: "India",
		TopN:             10,
	}

	got, err := Rank(records, q)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("order = %v, want %v", names(got), want)
	}
	if math.Abs(got[0].Score-0.87) > epsilon {
		t.Errorf("A score = %v, want 0.87", got[0].Score)
	}
	if math.Abs(got[1].Score-0.86) > epsilon {
		t.Errorf("B score = %v, want 0.86", got[1].Score)
	}
	if math.Abs(got[0].NormalizedVotes-0.8) > epsilon || math.Abs(got[0].NormalizedRating-0.9) > epsilon {
		t.Errorf("A signals = %v/%v, want 0.9/0.8", got[0].NormalizedRating, got[0].NormalizedVotes)
	}
}

func TestRank_Filters(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "Delhi Pasta", "italian", models.PriceMedium, "India", 4.0, 10),
		rec(1, "NYC Pasta", "italian", models.PriceMedium, "United States", 4.0, 10),
		rec(2, "Cafe First", "cafe", models.PriceMedium, "India", 4.9, 10),
		rec(3, "Pricey", "italian", models.PriceHigh, "India", 4.9, 10),
		rec(4, "Nowhere", "italian", models.PriceMedium, models.UnknownCountry, 3.0, 1),
	}

	tests := []struct {
		name  string
		query models.Query
		want  []string
	}{
		{
			name:  "country substring is case-insensitive",
			query: models.Query{Cuisines: []string{"italian"}, PriceRanges: []models.PriceRange{models.PriceMedium}, CountrySubstring: "iND", TopN: 10},
			want:  []string{"Delhi Pasta"},
		},
		{
			name:  "partial country substring",
			query: models.Query{Cuisines: []string{"italian"}, PriceRanges: []models.PriceRange{models.PriceMedium}, CountrySubstring: "states", TopN: 10},
			want:  []string{"NYC Pasta"},
		},
		{
			name:  "empty country matches all",
			query: models.Query{Cuisines: []string{"italian"}, PriceRanges: []models.PriceRange{models.PriceMedium}, TopN: 10},
			want:  []string{"Delhi Pasta", "NYC Pasta", "Nowhere"},
		},
		{
			name:  "only primary cuisine counts",
			query: models.Query{Cuisines: []string{"cafe"}, PriceRanges: []models.PriceRange{models.PriceMedium, models.PriceHigh}, TopN: 10},
			want:  []string{"Cafe First"},
		},
		{
			name:  "price set",
			query: models.Query{Cuisines: []string{"italian"}, PriceRanges: []models.PriceRange{models.PriceHigh}, TopN: 10},
			want:  []string{"Pricey"},
		},
		{
			name:  "empty cuisine set matches nothing",
			query: models.Query{PriceRanges: []models.PriceRange{models.PriceMedium}, TopN: 10},
			want:  []string{},
		},
		{
			name:  "empty price set matches nothing",
			query: models.Query{Cuisines: []string{"italian"}, TopN: 10},
			want:  []string{},
		},
		{
			name:  "no country match",
			query: models.Query{Cuisines: []string{"italian"}, PriceRanges: []models.PriceRange{models.PriceMedium}, CountrySubstring: "Brazil", TopN: 10},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(records, tt.query)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			if got == nil {
				t.Fatal("Rank() returned nil slice, want empty non-nil")
			}
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("Rank() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestRank_InvalidTopN(t *testing.T) {
	records := []models.CanonicalRecord{rec(0, "A", "thai", models.PriceLow, "India", 4, 1)}

	for _, topN := range []int{0, -1} {
		_, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: topN})
		if !errors.Is(err, models.ErrInvalidQuery) {
			t.Errorf("Rank(topN=%d) error = %v, want ErrInvalidQuery", topN, err)
		}
	}
}

func TestRank_FewerMatchesThanTopN(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "A", "thai", models.PriceLow, "India", 4.1, 3),
		rec(1, "B", "thai", models.PriceLow, "India", 3.2, 9),
		rec(2, "C", "thai", models.PriceLow, "India", 4.8, 1),
	}

	got, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 10})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestRank_Truncates(t *testing.T) {
	records := make([]models.CanonicalRecord, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, rec(i, "R", "thai", models.PriceLow, "India", float64(i%5), i))
	}

	got, _, err := rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 7})
	if err != nil {
		t.Fatalf("rank() error = %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("results not sorted at %d: %v < %v", i, got[i-1].Score, got[i].Score)
		}
	}
}

func TestRank_ZeroVotes(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "A", "thai", models.PriceLow, "India", 5, 0),
		rec(1, "B", "thai", models.PriceLow, "India", 2.5, 0),
	}

	got, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 5})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for _, r := range got {
		if r.NormalizedVotes != 0 || math.IsNaN(r.Score) {
			t.Errorf("%s: normVotes=%v score=%v, want 0 and finite", r.Name, r.NormalizedVotes, r.Score)
		}
	}
	if math.Abs(got[0].Score-0.7) > epsilon || math.Abs(got[1].Score-0.35) > epsilon {
		t.Errorf("scores = %v, %v; want 0.7, 0.35", got[0].Score, got[1].Score)
	}
}

func TestRank_TiesKeepIDOrder(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(3, "first", "thai", models.PriceLow, "India", 4, 10),
		rec(7, "second", "thai", models.PriceLow, "India", 4, 10),
		rec(9, "third", "thai", models.PriceLow, "India", 4, 10),
	}

	got, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 3})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("tie order = %v, want %v", names(got), want)
	}
}

func TestRank_MaxVotesIsPerQuery(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "Thai", "thai", models.PriceLow, "India", 4, 100),
		rec(1, "Huge", "burger", models.PriceLow, "India", 4, 100000),
	}

	got, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 1})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if got[0].NormalizedVotes != 1 {
		t.Errorf("NormalizedVotes = %v, want 1 (max over filtered set)", got[0].NormalizedVotes)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	records := []models.CanonicalRecord{
		rec(0, "A", "thai", models.PriceLow, "India", 3, 1),
		rec(1, "B", "thai", models.PriceLow, "India", 5, 2),
	}
	before := []models.CanonicalRecord{records[0].Clone(), records[1].Clone()}

	got, err := Rank(records, models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow}, TopN: 2})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	got[0].CuisineTags[0] = "mutated"

	if !reflect.DeepEqual(records, before) {
		t.Errorf("input records changed: %+v", records)
	}
}
