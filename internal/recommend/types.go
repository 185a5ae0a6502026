// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/tablematch/internal/cache"
	"github.com/tomtom215/tablematch/internal/models"
)

// DataProvider supplies the current canonical dataset.
// It is implemented by dataset.Store.
type DataProvider interface {
	GetDataset(ctx context.Context) (*models.Dataset, error)
}

// Recommendation is a ranked result with presentation fields.
type Recommendation struct {
	models.RankedResult

	// Rank is the 1-based position in the response.
	Rank int `json:"rank"`

	// Cuisine is the primary cuisine in title case.
	Cuisine string `json:"cuisine"`

	// Location is the city, or "Unknown" when the record has none.
	Location string `json:"location"`

	// Explanation lists the constraints the result matched and its signals.
	Explanation string `json:"explanation"`
}

// Response contains ranked recommendations and metadata.
type Response struct {
	Results []Recommendation `json:"results"`

	// TotalMatches is the number of records that passed the filters
	// before truncation to TopN.
	TotalMatches int `json:"total_matches"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID      string       `json:"request_id"`
	Query          models.Query `json:"query"`
	DatasetVersion string       `json:"dataset_version"`
	DatasetSize    int          `json:"dataset_size"`
	Cached         bool         `json:"cached"`
	LatencyMS      int64        `json:"latency_ms"`
	Timestamp      time.Time    `json:"timestamp"`
}

// Options lists the values a client can choose from.
type Options struct {
	Cuisines       []string            `json:"cuisines"`
	PriceRanges    []models.PriceRange `json:"price_ranges"`
	Countries      []string            `json:"countries"`
	DefaultCuisine string              `json:"default_cuisine"`
	DefaultCountry string              `json:"default_country"`
	DefaultTopN    int                 `json:"default_top_n"`
	MinTopN        int                 `json:"min_top_n"`
	MaxTopN        int                 `json:"max_top_n"`

	DefaultPriceRanges []models.PriceRange `json:"default_price_ranges"`
}

// Metrics contains engine counters.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	EmptyCount   int64 `json:"empty_count"`
	InvalidCount int64 `json:"invalid_count"`
	ErrorCount   int64 `json:"error_count"`

	// Cache is nil when result caching is disabled.
	Cache *cache.Stats `json:"cache,omitempty"`
}
