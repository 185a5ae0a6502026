// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package ingest loads raw restaurant rows and the country code lookup.
//
// Two sources are provided:
//
//   - FileSource reads a CSV export (latin-1 by default) and a country
//     table in .xlsx or .csv form
//   - DuckDBSource runs two queries against a DuckDB database
//
// Both return a RawDataset with a fingerprint of the inputs, so callers can
// skip normalization when nothing changed. Ingestion does no cleaning:
// every column is passed through and empty cells become absent fields.
package ingest
