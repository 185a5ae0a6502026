// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package normalize turns raw restaurant rows into canonical records.
//
// A pass applies these steps in order:
//
//  1. Enrich each row with a country name from the code lookup
//  2. Drop exact duplicates, keeping the first occurrence
//  3. Remove columns the recommender never reads
//  4. Drop rows without cuisines or rating
//  5. Lowercase, trim and split cuisines; the first tag is primary
//  6. Parse the cost for two, dropping unparsable or negative values
//  7. Bucket cost into Low, Medium or High
//  8. Parse rating (0..5) and votes (non-negative integer, absent is 0)
//  9. Fill unresolved countries with "Unknown"
//
// Rows that fail a step are dropped silently; the counts are reported in
// models.NormalizeStats and in the tablematch_normalize_records_total metric.
// The same input always produces the same output.
package normalize
