// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/tablematch/internal/models"
)

// Country table column headers.
const (
	CountryCodeHeader = "Country Code"
	CountryNameHeader = "Country"
)

// ErrMissingColumn is returned when a required header is not found.
var ErrMissingColumn = errors.New("missing required column")

// RawDataset is the unprocessed input to normalization.
type RawDataset struct {
	Records   []models.RawRecord
	Countries models.CountryLookup

	// Fingerprint is a hex SHA-256 over both inputs.
	Fingerprint string
}

// Source loads a RawDataset.
type Source interface {
	Load(ctx context.Context) (*RawDataset, error)
	String() string
}

// tableToRecords converts a header row plus data rows into raw records.
// Blank cells are left out so they read as absent.
func tableToRecords(header []string, rows [][]string) []models.RawRecord {
	records := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(models.RawRecord, len(header))
		for i, col := range header {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// buildLookup reads code and name columns from a country table.
// The first occurrence of a code wins.
func buildLookup(header []string, rows [][]string) (models.CountryLookup, error) {
	codeIdx, nameIdx := -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), CountryCodeHeader):
			codeIdx = i
		case strings.EqualFold(strings.TrimSpace(h), CountryNameHeader):
			nameIdx = i
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("country table: %w %q", ErrMissingColumn, CountryCodeHeader)
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("country table: %w %q", ErrMissingColumn, CountryNameHeader)
	}

	lookup := make(models.CountryLookup, len(rows))
	for _, row := range rows {
		if codeIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		key, ok := models.CountryKey(row[codeIdx])
		name := strings.TrimSpace(row[nameIdx])
		if !ok || name == "" {
			continue
		}
		if _, exists := lookup[key]; !exists {
			lookup[key] = name
		}
	}
	return lookup, nil
}
