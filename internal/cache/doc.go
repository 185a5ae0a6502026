// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package cache provides a bounded LRU cache with TTL expiry and a helper
// for deriving compact keys from structured parameters.
//
// The recommendation engine uses it to memoize ranked pages per dataset
// fingerprint and query:
//
//	c := cache.NewLRU[page](1024, 10*time.Minute)
//	key := cache.Key(ds.Fingerprint, q)
//	if p, ok := c.Get(key); ok {
//	    return p
//	}
package cache
