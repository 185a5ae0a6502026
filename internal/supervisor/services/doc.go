// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package services adapts the server's components to suture.Service.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - DatasetService warms the dataset store on start and, when watching is
//     enabled, reloads it after the source files change.
package services
