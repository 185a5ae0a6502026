// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package logging provides centralized zerolog-based structured logging.
//
// The global logger is configured once at startup from the logging section
// of the configuration (LOG_LEVEL, LOG_FORMAT, LOG_CALLER):
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("records", n).Msg("Dataset loaded")
//
// Components take a child logger with a component field:
//
//	logger := logging.WithComponent("dataset")
//
// Request-scoped logging picks up request and correlation IDs stored in the
// context by the HTTP middleware:
//
//	logging.Ctx(ctx).Debug().Msg("Ranking request")
//
// SlogHandler adapts zerolog to log/slog for libraries that only speak slog,
// such as the supervisor tree's sutureslog hook.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
