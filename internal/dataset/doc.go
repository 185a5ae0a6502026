// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package dataset memoizes the normalized dataset.
//
// Store loads lazily on first access. Concurrent first calls share a single
// load (golang.org/x/sync/singleflight), and later calls return the cached
// dataset without touching the source. Invalidate drops the cached value;
// Reload drops it and loads again.
//
// A load reads the source and compares its fingerprint with the last
// dataset built. When the fingerprint matches, that dataset is reused.
// Otherwise a configured snapshot store is consulted before normalizing,
// and freshly normalized datasets are written back to it.
package dataset
