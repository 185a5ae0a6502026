// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package dataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/tablematch/internal/ingest"
	"github.com/tomtom215/tablematch/internal/metrics"
	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/normalize"
	"github.com/tomtom215/tablematch/internal/snapshot"
)

// ErrNoSource is returned when the store has no source configured.
var ErrNoSource = errors.New("dataset source not configured")

// Load results reported to metrics.
const (
	loadNormalized = "normalized"
	loadReused     = "reused"
	loadSnapshot   = "snapshot"
)

// SnapshotStore persists normalized datasets by fingerprint.
// Load returns snapshot.ErrNotFound on a miss.
type SnapshotStore interface {
	Load(ctx context.Context, fingerprint string) (*models.Dataset, error)
	Save(ctx context.Context, ds *models.Dataset) error
}

// Store is a lazily loaded, memoized dataset. It is safe for concurrent use.
type Store struct {
	source     ingest.Source
	normalizer *normalize.Normalizer
	snapshots  SnapshotStore
	logger     zerolog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	current    *models.Dataset
	last       *models.Dataset
	generation uint64
}

// NewStore creates a Store over source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(source ingest.Source, logger zerolog.Logger) *Store {
	return &Store{
		source:     source,
		normalizer: normalize.New(logger),
		logger:     logger.With().Str("component", "dataset").Logger(),
	}
}

// WithSnapshots enables snapshot lookup and persistence.
func (s *Store) WithSnapshots(snapshots SnapshotStore) *Store {
	s.snapshots = snapshots
	return s
}

// GetDataset returns the current dataset, loading it on first use.
func (s *Store) GetDataset(ctx context.Context) (*models.Dataset, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}
	return s.load(ctx)
}

// Loaded reports whether a dataset is cached.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Invalidate drops the cached dataset. The next GetDataset reloads.
// A load already in flight still completes but is not cached.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.generation++
	s.mu.Unlock()
	s.logger.Info().Msg("dataset invalidated")
}

// Reload invalidates and loads again.
func (s *Store) Reload(ctx context.Context) (*models.Dataset, error) {
	s.Invalidate()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*models.Dataset, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	// Callers share one build per generation. The build is detached from
	// the first caller's cancellation so waiters are not failed by it.
	buildCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return s.build(buildCtx, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Dataset), nil
	}
}

func (s *Store) build(ctx context.Context, gen uint64) (*models.Dataset, error) {
	start := time.Now()

	raw, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordDatasetLoad("", 0, err)
		s.logger.Error().Err(err).Str("source", s.source.String()).Msg("dataset load failed")
		return nil, fmt.Errorf("load %s: %w", s.source, err)
	}

	ds, result := s.resolve(ctx, raw)

	s.mu.Lock()
	s.last = ds
	if s.generation == gen {
		s.current = ds
	}
	s.mu.Unlock()

	metrics.RecordDatasetLoad(result, ds.Len(), nil)
	s.logger.Info().
		Str("source", s.source.String()).
		Str("result", result).
		Str("fingerprint", shortFingerprint(ds.Fingerprint)).
		Int("records", ds.Len()).
		Int("input", ds.Stats.Input).
		Dur("duration", time.Since(start)).
		Msg("dataset ready")

	return ds, nil
}

// resolve turns raw input into a dataset, reusing the previous build or a
// snapshot when the fingerprint allows it.
func (s *Store) resolve(ctx context.Context, raw *ingest.RawDataset) (*models.Dataset, string) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last != nil && raw.Fingerprint != "" && last.Fingerprint == raw.Fingerprint {
		return last, loadReused
	}

	if ds := s.fromSnapshot(ctx, raw.Fingerprint); ds != nil {
		return ds, loadSnapshot
	}

	res := s.normalizer.Normalize(raw.Records, raw.Countries)
	ds := &models.Dataset{
		Fingerprint: raw.Fingerprint,
		Records:     res.Records,
		Stats:       res.Stats,
		LoadedAt:    time.Now().UTC(),
	}

	if s.snapshots != nil && ds.Fingerprint != "" {
		if err := s.snapshots.Save(ctx, ds); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist dataset snapshot")
		}
	}
	return ds, loadNormalized
}

func (s *Store) fromSnapshot(ctx context.Context, fingerprint string) *models.Dataset {
	if s.snapshots == nil || fingerprint == "" {
		return nil
	}
	ds, err := s.snapshots.Load(ctx, fingerprint)
	switch {
	case err == nil:
		metrics.RecordSnapshotLookup("hit")
		return ds
	case errors.Is(err, snapshot.ErrNotFound):
		metrics.RecordSnapshotLookup("miss")
	default:
		metrics.RecordSnapshotLookup("error")
		s.logger.Warn().Err(err).Msg("snapshot lookup failed, normalizing")
	}
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
