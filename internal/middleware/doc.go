// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package middleware provides HTTP instrumentation middleware.

PrometheusMetrics records request count, latency and in-flight requests
for every request it wraps. The endpoint label is the matched chi route
pattern (for example /api/v1/recommendations), never the raw URL, so query
strings and unknown paths cannot inflate label cardinality.

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/options", h.Options)
	})
*/
package middleware
