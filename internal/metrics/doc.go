// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package metrics provides Prometheus metrics for the recommender.

Metrics are registered with the default registry through promauto and are
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Normalization:
  - tablematch_normalize_records_total{outcome}: kept, duplicate, missing_cuisine,
    missing_rating, missing_name, invalid_cost, invalid_rating, invalid_votes
  - tablematch_normalize_duration_seconds

Dataset:
  - tablematch_dataset_records
  - tablematch_dataset_loads_total{result}: normalized, reused, snapshot, error
  - tablematch_dataset_last_load_timestamp_seconds
  - tablematch_snapshot_lookups_total{result}

Ranking:
  - tablematch_rank_requests_total{outcome}: ok, empty, invalid
  - tablematch_rank_duration_seconds
  - tablematch_rank_results

Source and API:
  - duckdb_query_duration_seconds{table}, duckdb_query_errors_total{table}
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
*/
package metrics
