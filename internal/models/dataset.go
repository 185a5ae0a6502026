// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package models

import "time"

// NormalizeStats counts what normalization did with each input record.
// Input equals Kept plus every drop counter.
type NormalizeStats struct {
	Input          int `json:"input"`
	Kept           int `json:"kept"`
	Duplicates     int `json:"duplicates"`
	MissingCuisine int `json:"missing_cuisine"`
	MissingRating  int `json:"missing_rating"`
	MissingName    int `json:"missing_name"`
	InvalidCost    int `json:"invalid_cost"`
	InvalidRating  int `json:"invalid_rating"`
	InvalidVotes   int `json:"invalid_votes"`

	// UnknownCountries counts kept records whose code had no lookup entry.
	UnknownCountries int `json:"unknown_countries"`
}

// Dataset is an immutable set of canonical records in ascending ID order.
type Dataset struct {
	// Fingerprint identifies the source inputs the records came from.
	Fingerprint string            `json:"fingerprint"`
	Records     []CanonicalRecord `json:"records"`
	Stats       NormalizeStats    `json:"stats"`
	LoadedAt    time.Time         `json:"loaded_at"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
