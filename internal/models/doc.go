// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package models defines the data structures shared by the ingestion,
normalization, ranking and presentation layers.

Key Components:

  - RawRecord: one row of the source dataset, keyed by column name
  - CountryLookup: country code to country name mapping
  - CanonicalRecord: a restaurant after normalization (cleaned cuisines,
    numeric cost, price bucket, rating and votes)
  - PriceRange: the Low/Medium/High cost bucket
  - Query: the user's hard filters plus the requested result count
  - RankedResult: a canonical record with its normalized signals and score
  - Dataset: an immutable, fingerprinted set of canonical records

Errors:

  - ErrInvalidQuery: sentinel for malformed queries
  - QueryError: field-level detail that unwraps to ErrInvalidQuery

Canonical records are never mutated after normalization. Ranking works on
copies, so a Dataset can be shared by any number of concurrent readers.
*/
package models
