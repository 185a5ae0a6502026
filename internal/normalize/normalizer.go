// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package normalize

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tablematch/internal/metrics"
	"github.com/tomtom215/tablematch/internal/models"
)

// PrunedFields are the source columns removed before validation.
var PrunedFields = []string{
	models.FieldRestaurantID,
	"Switch to order menu",
	"Address",
	"Locality Verbose",
	"Currency",
	"Rating color",
	"Rating text",
	"Menu Page",
	"Phone",
}

// Result is the output of one normalization pass.
type Result struct {
	Records []models.CanonicalRecord
	Stats   models.NormalizeStats
}

// Normalizer converts raw rows into canonical records.
// It holds no per-pass state and is safe for concurrent use.
type Normalizer struct {
	logger zerolog.Logger
	pruned map[string]struct{}
}

// New creates a Normalizer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(logger zerolog.Logger) *Normalizer {
	pruned := make(map[string]struct{}, len(PrunedFields))
	for _, f := range PrunedFields {
		pruned[f] = struct{}{}
	}
	return &Normalizer{
		logger: logger.With().Str("component", "normalize").Logger(),
		pruned: pruned,
	}
}

// Normalize runs the full pipeline over raw. The input slice and its
// records are not modified.
func (n *Normalizer) Normalize(raw []models.RawRecord, lookup models.CountryLookup) Result {
	start := time.Now()
	stats := models.NormalizeStats{Input: len(raw)}
	out := make([]models.CanonicalRecord, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for i, src := range raw {
		rec := n.enrich(src, lookup)

		key := rec.Key()
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		n.prune(rec)

		canonical, outcome := n.build(i, rec)
		if outcome != metrics.OutcomeKept {
			countDrop(&stats, outcome)
			continue
		}
		if canonical.CountryName == "" {
			canonical.CountryName = models.UnknownCountry
			stats.UnknownCountries++
		}
		out = append(out, canonical)
	}
	stats.Kept = len(out)

	elapsed := time.Since(start)
	metrics.RecordNormalization(stats, elapsed)
	n.logger.Debug().
		Int("input", stats.Input).
		Int("kept", stats.Kept).
		Int("duplicates", stats.Duplicates).
		Int("unknown_countries", stats.UnknownCountries).
		Dur("duration", elapsed).
		Msg("normalization complete")

	return Result{Records: out, Stats: stats}
}

// enrich copies src and attaches the resolved country name. Unresolved
// codes leave the field absent until the final fill.
func (n *Normalizer) enrich(src models.RawRecord, lookup models.CountryLookup) models.RawRecord {
	rec := src.Clone()
	delete(rec, models.FieldCountry)
	if code, ok := rec.Value(models.FieldCountryCode); ok {
		if name, found := lookup.Resolve(code); found {
			rec[models.FieldCountry] = name
		}
	}
	return rec
}

func (n *Normalizer) prune(rec models.RawRecord) {
	for field := range n.pruned {
		delete(rec, field)
	}
}

// build validates and converts one deduplicated, pruned row.
// The returned outcome is metrics.OutcomeKept on success.
func (n *Normalizer) build(id int, rec models.RawRecord) (models.CanonicalRecord, string) {
	cuisines, hasCuisines := rec.Text(models.FieldCuisines)
	if !hasCuisines {
		return models.CanonicalRecord{}, metrics.OutcomeMissingCuisine
	}
	ratingRaw, hasRating := rec.Value(models.FieldRating)
	if !hasRating {
		return models.CanonicalRecord{}, metrics.OutcomeMissingRating
	}
	name, hasName := rec.Text(models.FieldName)
	if !hasName {
		return models.CanonicalRecord{}, metrics.OutcomeMissingName
	}

	tags, ok := SplitCuisines(cuisines)
	if !ok {
		return models.CanonicalRecord{}, metrics.OutcomeMissingCuisine
	}

	costRaw, _ := rec.Value(models.FieldCostForTwo)
	cost, err := parseCost(costRaw)
	if err != nil {
		return models.CanonicalRecord{}, metrics.OutcomeInvalidCost
	}

	rating, err := parseRating(ratingRaw)
	if err != nil {
		return models.CanonicalRecord{}, metrics.OutcomeInvalidRating
	}

	votesRaw, hasVotes := rec.Value(models.FieldVotes)
	votes, err := parseVotes(votesRaw, hasVotes)
	if err != nil {
		return models.CanonicalRecord{}, metrics.OutcomeInvalidVotes
	}

	canonical := models.CanonicalRecord{
		ID:          id,
		Name:        name,
		CuisineTags: tags,
		CostForTwo:  cost,
		PriceRange:  models.PriceRangeFor(cost),
		Rating:      rating,
		Votes:       votes,
	}
	if city, ok := rec.Text(models.FieldCity); ok {
		canonical.City = &city
	}
	if country, ok := rec.Text(models.FieldCountry); ok {
		canonical.CountryName = country
	}
	return canonical, metrics.OutcomeKept
}

func countDrop(stats *models.NormalizeStats, outcome string) {
	switch outcome {
	case metrics.OutcomeMissingCuisine:
		stats.MissingCuisine++
	case metrics.OutcomeMissingRating:
		stats.MissingRating++
	case metrics.OutcomeMissingName:
		stats.MissingName++
	case metrics.OutcomeInvalidCost:
		stats.InvalidCost++
	case metrics.OutcomeInvalidRating:
		stats.InvalidRating++
	case metrics.OutcomeInvalidVotes:
		stats.InvalidVotes++
	}
}
