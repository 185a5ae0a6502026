// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tablematch/internal/ingest"
	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/snapshot"
)

// fakeSource implements ingest.Source for testing.
type fakeSource struct {
	mu          sync.Mutex
	fingerprint string
	err         error
	delay       time.Duration
	calls       atomic.Int32
}

func (f *fakeSource) Load(ctx context.Context) (*ingest.RawDataset, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &ingest.RawDataset{
		Records: []models.RawRecord{{
			models.FieldName:        "Pasta Place",
			models.FieldCuisines:    "Italian",
			models.FieldCostForTwo:  "800",
			models.FieldRating:      "4.5",
			models.FieldVotes:       "800",
			models.FieldCountryCode: "1",
		}},
		Countries:   models.CountryLookup{"1": "India"},
		Fingerprint: f.fingerprint,
	}, nil
}

func (f *fakeSource) String() string { return "fake" }

func (f *fakeSource) setFingerprint(fp string) {
	f.mu.Lock()
	f.fingerprint = fp
	f.mu.Unlock()
}

// memorySnapshots implements SnapshotStore for testing.
type memorySnapshots struct {
	mu    sync.Mutex
	data  map[string]*models.Dataset
	saves int
}

func (m *memorySnapshots) Load(ctx context.Context, fingerprint string) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.data[fingerprint]
	if !ok {
		return nil, snapshot.ErrNotFound
	}
	return ds, nil
}

func (m *memorySnapshots) Save(ctx context.Context, ds *models.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]*models.Dataset)
	}
	m.data[ds.Fingerprint] = ds
	m.saves++
	return nil
}

func TestStore_LazyLoad(t *testing.T) {
	src := &fakeSource{fingerprint: "fp-1"}
	store := NewStore(src, zerolog.Nop())

	if store.Loaded() {
		t.Fatal("Loaded() = true before first access")
	}
	if got := src.calls.Load(); got != 0 {
		t.Fatalf("source called %d times before first access", got)
	}

	ds, err := store.GetDataset(context.Background())
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if ds.Len() != 1 || ds.Records[0].CountryName != "India" {
		t.Errorf("dataset = %+v", ds)
	}

	again, err := store.GetDataset(context.Background())
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if again != ds {
		t.Error("second GetDataset() returned a different dataset")
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}

func TestStore_SingleFlight(t *testing.T) {
	src := &fakeSource{fingerprint: "fp-1", delay: 50 * time.Millisecond}
	store := NewStore(src, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]*models.Dataset, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := store.GetDataset(context.Background())
			if err != nil {
				t.Errorf("GetDataset() error = %v", err)
				return
			}
			results[i] = ds
		}(i)
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times under concurrent first access, want 1", got)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different dataset", i)
		}
	}
}

func TestStore_InvalidateAndReload(t *testing.T) {
	src := &fakeSource{fingerprint: "fp-1"}
	store := NewStore(src, zerolog.Nop())
	ctx := context.Background()

	first, err := store.GetDataset(ctx)
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}

	store.Invalidate()
	if store.Loaded() {
		t.Error("Loaded() = true after Invalidate")
	}

	// Same fingerprint: the source is read again but the dataset is reused.
	reused, err := store.GetDataset(ctx)
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if reused != first {
		t.Error("unchanged fingerprint should reuse the previous dataset")
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source called %d times, want 2", got)
	}

	src.setFingerprint("fp-2")
	reloaded, err := store.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reloaded == first || reloaded.Fingerprint != "fp-2" {
		t.Errorf("Reload() = %s, want a fresh fp-2 dataset", reloaded.Fingerprint)
	}
}

func TestStore_LoadError(t *testing.T) {
	loadErr := errors.New("disk on fire")
	src := &fakeSource{err: loadErr}
	store := NewStore(src, zerolog.Nop())

	if _, err := store.GetDataset(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("GetDataset() error = %v, want %v", err, loadErr)
	}
	if store.Loaded() {
		t.Error("failed load should not be cached")
	}

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()
	if _, err := store.GetDataset(context.Background()); err != nil {
		t.Errorf("retry after failure error = %v", err)
	}
}

func TestStore_NoSource(t *testing.T) {
	store := NewStore(nil, zerolog.Nop())
	if _, err := store.GetDataset(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("GetDataset() error = %v, want ErrNoSource", err)
	}
}

func TestStore_Snapshots(t *testing.T) {
	snaps := &memorySnapshots{}
	ctx := context.Background()

	first := NewStore(&fakeSource{fingerprint: "fp-1"}, zerolog.Nop()).WithSnapshots(snaps)
	ds, err := first.GetDataset(ctx)
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if snaps.saves != 1 {
		t.Fatalf("snapshot saves = %d, want 1", snaps.saves)
	}

	// A new store (fresh process) with the same inputs uses the snapshot.
	second := NewStore(&fakeSource{fingerprint: "fp-1"}, zerolog.Nop()).WithSnapshots(snaps)
	got, err := second.GetDataset(ctx)
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if got != ds {
		t.Error("expected dataset from snapshot store")
	}
	if snaps.saves != 1 {
		t.Errorf("snapshot saves = %d, want 1 (no re-save on hit)", snaps.saves)
	}
}

func TestStore_CallerCancellation(t *testing.T) {
	src := &fakeSource{fingerprint: "fp-1", delay: 100 * time.Millisecond}
	store := NewStore(src, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := store.GetDataset(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("GetDataset() error = %v, want DeadlineExceeded", err)
	}

	// The detached build still completes and a later caller gets it.
	ds, err := store.GetDataset(context.Background())
	if err != nil || ds.Len() != 1 {
		t.Errorf("GetDataset() after cancel = %v, %v", ds, err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}
