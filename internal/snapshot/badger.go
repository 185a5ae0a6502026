// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tablematch/internal/models"
)

// Key layout in BadgerDB.
const (
	datasetKeyPrefix = "dataset:"
	latestKey        = "dataset_latest"
)

// ErrNotFound is returned when no snapshot exists for a fingerprint.
var ErrNotFound = errors.New("snapshot not found")

// BadgerStore stores dataset snapshots in BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// Open opens (or creates) a BadgerDB directory for snapshots.
func Open(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %q: %w", path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Save stores ds under its fingerprint and marks it as the latest snapshot.
func (s *BadgerStore) Save(ctx context.Context, ds *models.Dataset) error {
	if ds == nil || ds.Fingerprint == "" {
		return fmt.Errorf("save snapshot: dataset has no fingerprint")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(datasetKeyPrefix+ds.Fingerprint), data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		if err := txn.Set([]byte(latestKey), []byte(ds.Fingerprint)); err != nil {
			return fmt.Errorf("set latest: %w", err)
		}
		return nil
	})
}

// Load returns the snapshot for fingerprint or ErrNotFound.
func (s *BadgerStore) Load(ctx context.Context, fingerprint string) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ds models.Dataset
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(datasetKeyPrefix + fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ds)
		})
	})
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// Latest returns the fingerprint of the most recently saved snapshot.
func (s *BadgerStore) Latest(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var fingerprint string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		fingerprint = string(val)
		return nil
	})
	return fingerprint, err
}

// Prune deletes every snapshot except the latest one and returns how many
// were removed.
func (s *BadgerStore) Prune(ctx context.Context) (int, error) {
	latest, err := s.Latest(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	keep := datasetKeyPrefix + latest

	var stale [][]byte
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(datasetKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if string(key) != keep {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return len(stale), nil
}

// Close closes the database when the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
