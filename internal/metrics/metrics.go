// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/tablematch/internal/models"
)

// Normalization outcome labels.
const (
	OutcomeKept           = "kept"
	OutcomeDuplicate      = "duplicate"
	OutcomeMissingCuisine = "missing_cuisine"
	OutcomeMissingRating  = "missing_rating"
	OutcomeMissingName    = "missing_name"
	OutcomeInvalidCost    = "invalid_cost"
	OutcomeInvalidRating  = "invalid_rating"
	OutcomeInvalidVotes   = "invalid_votes"
)

// Rank outcome labels.
const (
	RankOK      = "ok"
	RankEmpty   = "empty"
	RankInvalid = "invalid"
)

var (
	// Normalization Metrics
	NormalizeRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablematch_normalize_records_total",
			Help: "Raw records processed by the normalizer, by outcome",
		},
		[]string{"outcome"},
	)

	NormalizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tablematch_normalize_duration_seconds",
			Help:    "Duration of a full normalization pass in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Dataset Metrics
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tablematch_dataset_records",
			Help: "Canonical records in the currently loaded dataset",
		},
	)

	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablematch_dataset_loads_total",
			Help: "Dataset load attempts by result (normalized, reused, snapshot, error)",
		},
		[]string{"result"},
	)

	DatasetLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tablematch_dataset_last_load_timestamp_seconds",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)

	// Snapshot Metrics
	SnapshotLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablematch_snapshot_lookups_total",
			Help: "Snapshot store lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ResultCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablematch_result_cache_lookups_total",
			Help: "Ranked result cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Ranking Metrics
	RankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablematch_rank_requests_total",
			Help: "Ranking requests by outcome",
		},
		[]string{"outcome"},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tablematch_rank_duration_seconds",
			Help:    "Duration of a ranking request in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RankResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tablematch_rank_results",
			Help:    "Number of results returned per ranking request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// Source Query Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB source queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB source query errors",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordNormalization records the per-outcome counts and duration of a pass.
func RecordNormalization(stats models.NormalizeStats, duration time.Duration) {
	NormalizeRecordsTotal.WithLabelValues(OutcomeKept).Add(float64(stats.Kept))
	NormalizeRecordsTotal.WithLabelValues(OutcomeDuplicate).Add(float64(stats.Duplicates))
	NormalizeRecordsTotal.WithLabelValues(OutcomeMissingCuisine).Add(float64(stats.MissingCuisine))
	NormalizeRecordsTotal.WithLabelValues(OutcomeMissingRating).Add(float64(stats.MissingRating))
	NormalizeRecordsTotal.WithLabelValues(OutcomeMissingName).Add(float64(stats.MissingName))
	NormalizeRecordsTotal.WithLabelValues(OutcomeInvalidCost).Add(float64(stats.InvalidCost))
	NormalizeRecordsTotal.WithLabelValues(OutcomeInvalidRating).Add(float64(stats.InvalidRating))
	NormalizeRecordsTotal.WithLabelValues(OutcomeInvalidVotes).Add(float64(stats.InvalidVotes))
	NormalizeDuration.Observe(duration.Seconds())
}

// RecordDatasetLoad records a dataset load attempt. records is ignored on error.
func RecordDatasetLoad(result string, records int, err error) {
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues(result).Inc()
	DatasetRecords.Set(float64(records))
	DatasetLastLoad.Set(float64(time.Now().Unix()))
}

// RecordSnapshotLookup records a snapshot store lookup result.
func RecordSnapshotLookup(result string) {
	SnapshotLookupsTotal.WithLabelValues(result).Inc()
}

// RecordResultCacheLookup records a ranked result cache lookup.
func RecordResultCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ResultCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordRank records a ranking request
func RecordRank(outcome string, results int, duration time.Duration) {
	RankRequestsTotal.WithLabelValues(outcome).Inc()
	RankDuration.Observe(duration.Seconds())
	if outcome != RankInvalid {
		RankResults.Observe(float64(results))
	}
}

// RecordDBQuery records a DuckDB source query
func RecordDBQuery(table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
