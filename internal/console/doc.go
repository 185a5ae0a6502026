// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package console renders ranked recommendations as a Markdown table for
// terminal output. Columns are padded by display width, so names with wide
// (CJK) or combining characters still line up.
package console
