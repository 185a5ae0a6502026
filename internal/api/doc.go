// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package api exposes the recommender over HTTP using the chi router.

Endpoints:

	GET  /api/v1/health/live           process is up
	GET  /api/v1/health/ready          dataset is loaded (503 otherwise)
	GET  /api/v1/options               selectable cuisines, price ranges, countries
	GET  /api/v1/recommendations       ranked results from query parameters
	POST /api/v1/recommendations       ranked results from a JSON body
	GET  /api/v1/recommendations/stats engine counters
	POST /api/v1/dataset/reload        re-ingest and re-normalize the dataset
	GET  /metrics                      Prometheus exposition

Query parameters for GET /api/v1/recommendations may repeat or be comma
separated:

	/api/v1/recommendations?cuisine=italian&cuisine=chinese&price=Low,Medium&country=ind&top_n=10

The POST body uses the same names as the JSON response echo:

	{"cuisines": ["Italian"], "price_ranges": ["High"], "country": "India", "top_n": 5}

A missing top_n falls back to recommend.default_top_n. An explicit top_n of
0 or less is rejected.

Every response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "INVALID_QUERY", "message": "..."}}

Error codes:

  - VALIDATION_ERROR (400): request fields failed validation
  - INVALID_QUERY (400): the ranker rejected the query
  - BAD_REQUEST (400): malformed body or parameters
  - DATASET_UNAVAILABLE (503): the dataset could not be loaded
  - TOO_MANY_REQUESTS (429): rate limit exceeded
*/
package api
