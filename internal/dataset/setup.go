// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tablematch/internal/config"
	"github.com/tomtom215/tablematch/internal/ingest"
	"github.com/tomtom215/tablematch/internal/snapshot"
)

// NewSource builds the ingestion source selected by data.Source.
// The returned close function releases whatever the source opened.
func NewSource(data config.DataConfig) (ingest.Source, func() error, error) {
	switch data.Source {
	case config.SourceFile:
		return ingest.NewFileSource(data.RestaurantsPath, data.CountriesPath, data.Encoding), func() error { return nil }, nil
	case config.SourceDuckDB:
		db, err := ingest.OpenDuckDB(data.DuckDBPath)
		if err != nil {
			return nil, nil, err
		}
		return ingest.NewDuckDBSource(db, data.RestaurantsQuery, data.CountriesQuery), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown data source %q", data.Source)
}

// NewFromConfig builds a Store for cfg, with a BadgerDB snapshot store when
// snapshots are enabled. Stale snapshots are pruned on open. The returned
// close function releases the source and the snapshot store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, func() error, error) {
	source, closeSource, err := NewSource(cfg.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset source: %w", err)
	}

	store := NewStore(source, logger)
	if !cfg.Snapshot.Enabled {
		return store, closeSource, nil
	}

	snapshots, err := snapshot.Open(cfg.Snapshot.Path)
	if err != nil {
		_ = closeSource()
		return nil, nil, err
	}

	if removed, err := snapshots.Prune(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to prune dataset snapshots")
	} else if removed > 0 {
		logger.Info().Int("removed", removed).Msg("pruned stale dataset snapshots")
	}

	closeAll := func() error {
		return errors.Join(snapshots.Close(), closeSource())
	}
	return store.WithSnapshots(snapshots), closeAll, nil
}

// WatchPaths lists the local files a reload watcher should follow for data.
func WatchPaths(data config.DataConfig) []string {
	switch data.Source {
	case config.SourceFile:
		return []string{data.RestaurantsPath, data.CountriesPath}
	case config.SourceDuckDB:
		if data.DuckDBPath != "" {
			return []string{data.DuckDBPath}
		}
	}
	return nil
}
