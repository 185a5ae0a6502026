// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package snapshot

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/tablematch/internal/models"
)

func setupTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDataset(fingerprint string) *models.Dataset {
	city := "Makati City"
	return &models.Dataset{
		Fingerprint: fingerprint,
		Records: []models.CanonicalRecord{{
			ID:          0,
			Name:        "Izakaya Kikufuji",
			CuisineTags: []string{"japanese", "sushi"},
			CountryName: "Phillipines",
			City:        &city,
			CostForTwo:  1200,
			PriceRange:  models.PriceHigh,
			Rating:      4.5,
			Votes:       591,
		}},
		Stats:    models.NormalizeStats{Input: 2, Kept: 1, Duplicates: 1},
		LoadedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBadgerStore_SaveLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := testDataset("fp-1")

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	latest, err := store.Latest(ctx)
	if err != nil || latest != "fp-1" {
		t.Errorf("Latest() = %q, %v; want fp-1", latest, err)
	}
}

func TestBadgerStore_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if _, err := store.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() error = %v, want ErrNotFound", err)
	}
}

func TestBadgerStore_SaveRequiresFingerprint(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Save(context.Background(), &models.Dataset{}); err == nil {
		t.Error("Save() expected error for empty fingerprint")
	}
}

func TestBadgerStore_Prune(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, fp := range []string{"fp-1", "fp-2", "fp-3"} {
		if err := store.Save(ctx, testDataset(fp)); err != nil {
			t.Fatalf("Save(%s) error = %v", fp, err)
		}
	}

	removed, err := store.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune() removed %d, want 2", removed)
	}
	if _, err := store.Load(ctx, "fp-3"); err != nil {
		t.Errorf("latest snapshot was pruned: %v", err)
	}
	if _, err := store.Load(ctx, "fp-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(fp-1) error = %v, want ErrNotFound", err)
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, testDataset("fp")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
	if _, err := store.Load(ctx, "fp"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
