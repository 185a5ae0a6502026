// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/tablematch/internal/models"
)

// Score weights. They sum to 1, so scores fall in [0, 1].
const (
	RatingWeight = 0.7
	VotesWeight  = 0.3
)

// Rank filters records by the query's hard constraints, scores the matches
// and returns at most q.TopN of them, best first.
//
// Records must be in ascending ID order; ties keep that order. An invalid
// query returns an error wrapping models.ErrInvalidQuery. No matches is an
// empty, non-nil slice. The input records are never modified.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func Rank(records []models.CanonicalRecord, q models.Query) ([]models.RankedResult, error) {
	results, _, err := rank(records, q)
	return results, err
}

// rank is Rank that also reports how many records passed the filters.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func rank(records []models.CanonicalRecord, q models.Query) ([]models.RankedResult, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}

	f := newFilter(q)
	matched := make([]models.RankedResult, 0)
	for i := range records {
		if f.matches(&records[i]) {
			matched = append(matched, models.RankedResult{CanonicalRecord: records[i].Clone()})
		}
	}
	if len(matched) == 0 {
		return matched, 0, nil
	}

	maxVotes := 0
	for i := range matched {
		if matched[i].Votes > maxVotes {
			maxVotes = matched[i].Votes
		}
	}

	for i := range matched {
		r := &matched[i]
		r.NormalizedRating = r.Rating / models.MaxRating
		if maxVotes > 0 {
			r.NormalizedVotes = float64(r.Votes) / float64(maxVotes)
		}
		r.Score = RatingWeight*r.NormalizedRating + VotesWeight*r.NormalizedVotes
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	total := len(matched)
	if total > q.TopN {
		matched = matched[:q.TopN]
	}
	return matched, total, nil
}

// filter holds the query's hard constraints in lookup form.
type filter struct {
	cuisines map[string]struct{}
	prices   map[models.PriceRange]struct{}
	country  string
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func newFilter(q models.Query) filter {
	f := filter{
		cuisines: make(map[string]struct{}, len(q.Cuisines)),
		prices:   make(map[models.PriceRange]struct{}, len(q.PriceRanges)),
		country:  strings.ToLower(q.CountrySubstring),
	}
	for _, c := range q.Cuisines {
		f.cuisines[c] = struct{}{}
	}
	for _, p := range q.PriceRanges {
		f.prices[p] = struct{}{}
	}
	return f
}

func (f *filter) matches(r *models.CanonicalRecord) bool {
	if _, ok := f.cuisines[r.PrimaryCuisine()]; !ok {
		return false
	}
	if _, ok := f.prices[r.PriceRange]; !ok {
		return false
	}
	if f.country == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.CountryName), f.country)
}
