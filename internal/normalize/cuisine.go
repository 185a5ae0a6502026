// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CuisineKey standardizes a single cuisine label: NFC, trimmed, lowercase.
// Query cuisines go through the same function so they compare equal to
// record tags.
func CuisineKey(label string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(label)))
}

// SplitCuisines turns a comma-separated cuisine list into ordered tags.
// Empty segments are removed. ok is false when the first segment is empty,
// because the primary cuisine must exist.
func SplitCuisines(text string) (tags []string, ok bool) {
	segments := strings.Split(CuisineKey(text), ",")
	if strings.TrimSpace(segments[0]) == "" {
		return nil, false
	}

	tags = make([]string, 0, len(segments))
	for _, seg := range segments {
		if tag := strings.TrimSpace(seg); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, true
}
