// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package snapshot persists normalized datasets in BadgerDB, keyed by the
// fingerprint of the inputs they were built from. A restart with unchanged
// inputs loads the snapshot instead of normalizing again.
package snapshot
