// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomtom215/tablematch/internal/cache"
	"github.com/tomtom215/tablematch/internal/logging"
	"github.com/tomtom215/tablematch/internal/metrics"
	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/normalize"
)

// ErrNoDataProvider is returned when the engine is used before SetDataProvider.
var ErrNoDataProvider = errors.New("data provider not set")

// Engine serves ranking requests against the current dataset.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	dataProvider DataProvider

	// pages is nil when caching is disabled.
	pages *cache.LRU[page]

	requestCount atomic.Int64
	emptyCount   atomic.Int64
	invalidCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Size > 0 {
		e.pages = cache.NewLRU[page](cfg.Cache.Size, cfg.Cache.TTL)
	}
	return e, nil
}

// page is a presented ranking, shared between cache hits.
type page struct {
	results []Recommendation
	total   int
}

// SetDataProvider sets the source of the canonical dataset.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// Recommend ranks the current dataset against q.
// Query cuisines are standardized like record cuisines before matching.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q models.Query) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	q = standardizeQuery(q)
	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	logger := e.logger.With().
		Str("request_id", requestID).
		Strs("cuisines", q.Cuisines).
		Int("top_n", q.TopN).
		Logger()

	if err := q.Validate(); err != nil {
		e.invalidCount.Add(1)
		metrics.RecordRank(metrics.RankInvalid, 0, time.Since(start))
		logger.Debug().Err(err).Msg("rejected invalid query")
		return nil, err
	}

	ds, err := e.dataset(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	key := cache.Key(ds.Fingerprint, q)
	pg, cached := e.cachedPage(key)
	if !cached {
		ranked, total, err := rank(ds.Records, q)
		if err != nil {
			e.invalidCount.Add(1)
			metrics.RecordRank(metrics.RankInvalid, 0, time.Since(start))
			return nil, err
		}
		pg = page{results: e.present(ranked, q), total: total}
		if e.pages != nil {
			e.pages.Add(key, pg)
		}
	}

	// Callers own the returned slice; cached pages stay untouched.
	results := make([]Recommendation, len(pg.results))
	copy(results, pg.results)

	resp := &Response{
		Results:      results,
		TotalMatches: pg.total,
		Metadata: ResponseMetadata{
			RequestID:      requestID,
			Query:          q,
			DatasetVersion: ds.Fingerprint,
			DatasetSize:    ds.Len(),
			Cached:         cached,
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now(),
		},
	}

	outcome := metrics.RankOK
	if len(results) == 0 {
		outcome = metrics.RankEmpty
		e.emptyCount.Add(1)
	}
	metrics.RecordRank(outcome, len(results), time.Since(start))

	logger.Debug().
		Int("matches", pg.total).
		Int("returned", len(results)).
		Bool("cached", cached).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// Options returns the selectable cuisines, price ranges and countries.
func (e *Engine) Options(ctx context.Context) (*Options, error) {
	ds, err := e.dataset(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	cuisines := make(map[string]struct{})
	countries := make(map[string]struct{})
	for i := range ds.Records {
		cuisines[ds.Records[i].PrimaryCuisine()] = struct{}{}
		countries[ds.Records[i].CountryName] = struct{}{}
	}

	opts := &Options{
		Cuisines:    sortedKeys(cuisines),
		PriceRanges: models.PriceRanges(),
		Countries:   sortedKeys(countries),
		DefaultTopN: e.config.Limits.DefaultTopN,
		MinTopN:     e.config.Limits.MinTopN,
		MaxTopN:     e.config.Limits.MaxTopN,

		// Every price range starts selected.
		DefaultPriceRanges: models.PriceRanges(),
	}
	opts.DefaultCuisine = pickDefault(cuisines, normalize.CuisineKey(e.config.Defaults.Cuisine), opts.Cuisines)
	opts.DefaultCountry = pickDefault(countries, e.config.Defaults.Country, opts.Countries)
	return opts, nil
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount: e.requestCount.Load(),
		EmptyCount:   e.emptyCount.Load(),
		InvalidCount: e.invalidCount.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
	if e.pages != nil {
		stats := e.pages.Stats()
		m.Cache = &stats
	}
	return m
}

func (e *Engine) cachedPage(key string) (page, bool) {
	if e.pages == nil {
		return page{}, false
	}
	pg, ok := e.pages.Get(key)
	metrics.RecordResultCacheLookup(ok)
	return pg, ok
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

func (e *Engine) dataset(ctx context.Context) (*models.Dataset, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}
	ds, err := e.dataProvider.GetDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return ds, nil
}

// present adds rank, display fields and an explanation to each result.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) present(ranked []models.RankedResult, q models.Query) []Recommendation {
	title := cases.Title(language.English)
	out := make([]Recommendation, len(ranked))
	for i := range ranked {
		out[i] = Recommendation{
			RankedResult: ranked[i],
			Rank:         i + 1,
			Cuisine:      title.String(ranked[i].PrimaryCuisine()),
			Location:     ranked[i].DisplayCity(),
			Explanation:  Explain(&ranked[i], q),
		}
	}
	return out
}

// Explain describes why a result was returned.
//
//	Matched on cuisine(s): italian | Price range(s): High | Country: India | Rating: 4.5 | Votes: 800
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func Explain(r *models.RankedResult, q models.Query) string {
	prices := make([]string, len(q.PriceRanges))
	for i, p := range q.PriceRanges {
		prices[i] = string(p)
	}
	country := q.CountrySubstring
	if country == "" {
		country = "Any"
	}
	return fmt.Sprintf("Matched on cuisine(s): %s | Price range(s): %s | Country: %s | Rating: %s | Votes: %d",
		strings.Join(q.Cuisines, ", "),
		strings.Join(prices, ", "),
		country,
		strconv.FormatFloat(r.Rating, 'f', -1, 64),
		r.Votes,
	)
}

// standardizeQuery applies cuisine standardization to the query cuisines.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func standardizeQuery(q models.Query) models.Query {
	if len(q.Cuisines) > 0 {
		cuisines := make([]string, 0, len(q.Cuisines))
		for _, c := range q.Cuisines {
			if key := normalize.CuisineKey(c); key != "" {
				cuisines = append(cuisines, key)
			}
		}
		q.Cuisines = cuisines
	}
	return q
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pickDefault(set map[string]struct{}, preferred string, sorted []string) string {
	if _, ok := set[preferred]; ok {
		return preferred
	}
	if len(sorted) > 0 {
		return sorted[0]
	}
	return ""
}
