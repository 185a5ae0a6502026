// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tablematch/internal/config"
	"github.com/tomtom215/tablematch/internal/logging"
	"github.com/tomtom215/tablematch/internal/models"
)

// DefaultReloadDebounce groups the burst of events an editor or copy
// produces into one reload.
const DefaultReloadDebounce = 500 * time.Millisecond

// DatasetLoader is the subset of *dataset.Store the service drives.
type DatasetLoader interface {
	GetDataset(ctx context.Context) (*models.Dataset, error)
	Reload(ctx context.Context) (*models.Dataset, error)
}

// WatchFunc registers onChange for modifications of path.
type WatchFunc func(path string, onChange func(err error)) error

// DatasetService loads the dataset when it starts and reloads it when a
// watched source file changes.
type DatasetService struct {
	store    DatasetLoader
	paths    []string
	watch    WatchFunc
	debounce time.Duration
	logger   zerolog.Logger

	changes   chan struct{}
	watchOnce sync.Once
	watchErr  error
}

// NewDatasetService creates the service. Paths are only watched when watch is true.
func NewDatasetService(store DatasetLoader, watch bool, paths ...string) *DatasetService {
	s := &DatasetService{
		store:    store,
		debounce: DefaultReloadDebounce,
		logger:   logging.WithComponent("dataset-service"),
		changes:  make(chan struct{}, 1),
	}
	if watch {
		s.paths = paths
		s.watch = config.WatchFile
	}
	return s
}

// WithWatchFunc replaces the file watcher.
func (s *DatasetService) WithWatchFunc(fn WatchFunc) *DatasetService {
	s.watch = fn
	return s
}

// WithDebounce sets the quiet period between a change and the reload.
func (s *DatasetService) WithDebounce(d time.Duration) *DatasetService {
	s.debounce = d
	return s
}

// Serve implements suture.Service. A failed warm-up is returned so the
// supervisor retries with backoff.
func (s *DatasetService) Serve(ctx context.Context) error {
	ds, err := s.store.GetDataset(ctx)
	if err != nil {
		return fmt.Errorf("warm dataset: %w", err)
	}
	s.logger.Info().
		Str("fingerprint", ds.Fingerprint).
		Int("records", ds.Len()).
		Msg("Dataset ready")

	// Watchers outlive a restart of Serve, so they are registered once.
	s.watchOnce.Do(s.startWatching)
	if s.watchErr != nil {
		return s.watchErr
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.changes:
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			s.reload(ctx)
		}
	}
}

func (s *DatasetService) startWatching() {
	if s.watch == nil {
		return
	}
	for _, path := range s.paths {
		if path == "" {
			continue
		}
		p := path
		err := s.watch(p, func(err error) {
			if err != nil {
				s.logger.Warn().Err(err).Str("path", p).Msg("Source watch error")
				return
			}
			select {
			case s.changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			s.watchErr = fmt.Errorf("watch %s: %w", p, err)
			return
		}
		s.logger.Info().Str("path", p).Msg("Watching dataset source")
	}
}

// reload logs a failure and returns; the store retries on the next request.
func (s *DatasetService) reload(ctx context.Context) {
	ds, err := s.store.Reload(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Dataset reload after source change failed")
		return
	}
	s.logger.Info().
		Str("fingerprint", ds.Fingerprint).
		Int("records", ds.Len()).
		Msg("Dataset reloaded after source change")
}

// String identifies the service in supervisor logs.
func (s *DatasetService) String() string {
	return "dataset-service"
}
