// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tablematch/internal/logging"
	"github.com/tomtom215/tablematch/internal/models"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	dataset *models.Dataset
	err     error
}

func (m *mockDataProvider) GetDataset(ctx context.Context) (*models.Dataset, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

func testDataset() *models.Dataset {
	city := "New Delhi"
	a := rec(0, "A", "italian", models.PriceHigh, "India", 4.5, 800)
	a.City = &city
	return &models.Dataset{
		Fingerprint: "abc123",
		Records: []models.CanonicalRecord{
			a,
			rec(1, "B", "italian", models.PriceHigh, "India", 4.0, 1000),
			rec(2, "C", "north indian", models.PriceLow, "India", 3.9, 50),
			rec(3, "D", "burger", models.PriceMedium, "United States", 4.2, 300),
		},
	}
}

func newTestEngine(t *testing.T, dp DataProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if dp != nil {
		engine.SetDataProvider(dp)
	}
	return engine
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.DefaultTopN = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("NewEngine() expected error for invalid config")
	}
}

func TestEngine_Recommend(t *testing.T) {
	engine := newTestEngine(t, &mockDataProvider{dataset: testDataset()})
	ctx := logging.ContextWithRequestID(context.Background(), "req-42")

	resp, err := engine.Recommend(ctx, models.Query{
		Cuisines:         []string{" Italian "},
		PriceRanges:      []models.PriceRange{models.PriceHigh},
		CountrySubstring: "india",
		TopN:             1,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", resp.TotalMatches)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(resp.Results))
	}

	top := resp.Results[0]
	if top.Name != "A" || top.Rank != 1 {
		t.Errorf("top = %s rank %d, want A rank 1", top.Name, top.Rank)
	}
	if top.Cuisine != "Italian" {
		t.Errorf("Cuisine = %q, want Italian", top.Cuisine)
	}
	if top.Location != "New Delhi" {
		t.Errorf("Location = %q, want New Delhi", top.Location)
	}
	want := "Matched on cuisine(s): italian | Price range(s): High | Country: india | Rating: 4.5 | Votes: 800"
	if top.Explanation != want {
		t.Errorf("Explanation = %q, want %q", top.Explanation, want)
	}
	if resp.Metadata.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want req-42", resp.Metadata.RequestID)
	}
	if resp.Metadata.DatasetVersion != "abc123" || resp.Metadata.DatasetSize != 4 {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
}

func TestEngine_Recommend_EmptyAndUnknownCity(t *testing.T) {
	engine := newTestEngine(t, &mockDataProvider{dataset: testDataset()})

	resp, err := engine.Recommend(context.Background(), models.Query{
		Cuisines:    []string{"sushi"},
		PriceRanges: models.PriceRanges(),
		TopN:        5,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 0 || resp.TotalMatches != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}

	resp, err = engine.Recommend(context.Background(), models.Query{
		Cuisines:    []string{"burger"},
		PriceRanges: models.PriceRanges(),
		TopN:        5,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := resp.Results[0].Location; got != models.UnknownCity {
		t.Errorf("Location = %q, want %q", got, models.UnknownCity)
	}
	if !strings.Contains(resp.Results[0].Explanation, "Country: Any") {
		t.Errorf("Explanation = %q, want Country: Any", resp.Results[0].Explanation)
	}

	if m := engine.GetMetrics(); m.RequestCount != 2 || m.EmptyCount != 1 {
		t.Errorf("metrics = %+v, want 2 requests and 1 empty", m)
	}
}

func TestEngine_Recommend_InvalidQuery(t *testing.T) {
	dp := &mockDataProvider{err: errors.New("must not be called")}
	engine := newTestEngine(t, dp)

	_, err := engine.Recommend(context.Background(), models.Query{Cuisines: []string{"italian"}, TopN: 0})
	if !errors.Is(err, models.ErrInvalidQuery) {
		t.Fatalf("Recommend() error = %v, want ErrInvalidQuery", err)
	}
	if m := engine.GetMetrics(); m.InvalidCount != 1 || m.ErrorCount != 0 {
		t.Errorf("metrics = %+v, want 1 invalid and 0 errors", m)
	}
}

func TestEngine_Recommend_ProviderErrors(t *testing.T) {
	engine := newTestEngine(t, nil)
	q := models.Query{Cuisines: []string{"italian"}, PriceRanges: models.PriceRanges(), TopN: 3}

	if _, err := engine.Recommend(context.Background(), q); !errors.Is(err, ErrNoDataProvider) {
		t.Errorf("Recommend() without provider error = %v, want ErrNoDataProvider", err)
	}

	loadErr := errors.New("source unavailable")
	engine.SetDataProvider(&mockDataProvider{err: loadErr})
	if _, err := engine.Recommend(context.Background(), q); !errors.Is(err, loadErr) {
		t.Errorf("Recommend() error = %v, want wrapped %v", err, loadErr)
	}
}

func TestEngine_Options(t *testing.T) {
	engine := newTestEngine(t, &mockDataProvider{dataset: testDataset()})

	opts, err := engine.Options(context.Background())
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	if want := []string{"burger", "italian", "north indian"}; !reflect.DeepEqual(opts.Cuisines, want) {
		t.Errorf("Cuisines = %v, want %v", opts.Cuisines, want)
	}
	if want := []string{"India", "United States"}; !reflect.DeepEqual(opts.Countries, want) {
		t.Errorf("Countries = %v, want %v", opts.Countries, want)
	}
	if !reflect.DeepEqual(opts.PriceRanges, models.PriceRanges()) {
		t.Errorf("PriceRanges = %v", opts.PriceRanges)
	}
	if !reflect.DeepEqual(opts.DefaultPriceRanges, models.PriceRanges()) {
		t.Errorf("DefaultPriceRanges = %v, want every price range", opts.DefaultPriceRanges)
	}
	if opts.DefaultCountry != "India" || opts.DefaultCuisine != "italian" {
		t.Errorf("defaults = %s/%s, want India/italian", opts.DefaultCountry, opts.DefaultCuisine)
	}
	if opts.DefaultTopN != 10 || opts.MinTopN != 5 || opts.MaxTopN != 20 {
		t.Errorf("top n bounds = %d/%d/%d", opts.DefaultTopN, opts.MinTopN, opts.MaxTopN)
	}
}

func TestEngine_Options_DefaultFallback(t *testing.T) {
	ds := &models.Dataset{Records: []models.CanonicalRecord{
		rec(0, "X", "sushi", models.PriceLow, "Japan", 4, 1),
	}}
	engine := newTestEngine(t, &mockDataProvider{dataset: ds})

	opts, err := engine.Options(context.Background())
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.DefaultCountry != "Japan" || opts.DefaultCuisine != "sushi" {
		t.Errorf("defaults = %s/%s, want Japan/sushi", opts.DefaultCountry, opts.DefaultCuisine)
	}
}

func TestEngine_ConcurrentRecommend(t *testing.T) {
	engine := newTestEngine(t, &mockDataProvider{dataset: testDataset()})
	q := models.Query{Cuisines: []string{"italian"}, PriceRanges: models.PriceRanges(), TopN: 2}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := engine.Recommend(context.Background(), q)
			if err != nil || len(resp.Results) != 2 || resp.Results[0].Name != "A" {
				t.Errorf("concurrent Recommend() = %+v, %v", resp, err)
			}
		}()
	}
	wg.Wait()

	if got := engine.GetMetrics().RequestCount; got != 20 {
		t.Errorf("RequestCount = %d, want 20", got)
	}
}

func TestEngine_Recommend_ResultCache(t *testing.T) {
	dp := &mockDataProvider{dataset: testDataset()}
	engine := newTestEngine(t, dp)
	q := models.Query{Cuisines: []string{"italian"}, PriceRanges: models.PriceRanges(), TopN: 5}

	first, err := engine.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.Cached {
		t.Error("first response should not be cached")
	}
	first.Results[0].Name = "mutated"

	second, err := engine.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.Cached {
		t.Error("repeated query should be served from cache")
	}
	if second.Results[0].Name != "A" {
		t.Errorf("cached top = %q, want A", second.Results[0].Name)
	}

	// A reloaded dataset has a new fingerprint and must not reuse pages.
	reloaded := testDataset()
	reloaded.Fingerprint = "def456"
	reloaded.Records = reloaded.Records[1:]
	dp.dataset = reloaded

	third, err := engine.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third.Metadata.Cached || third.Results[0].Name != "B" {
		t.Errorf("after reload cached=%v top=%q, want fresh ranking with B", third.Metadata.Cached, third.Results[0].Name)
	}

	stats := engine.GetMetrics().Cache
	if stats == nil || stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("cache stats = %+v, want 1 hit and 2 misses", stats)
	}
}

func TestEngine_Recommend_CacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Size = 0
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(&mockDataProvider{dataset: testDataset()})

	q := models.Query{Cuisines: []string{"italian"}, PriceRanges: models.PriceRanges(), TopN: 5}
	for i := 0; i < 2; i++ {
		resp, err := engine.Recommend(context.Background(), q)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.Cached {
			t.Errorf("request %d served from a disabled cache", i)
		}
	}
	if engine.GetMetrics().Cache != nil {
		t.Error("Metrics.Cache should be nil when caching is disabled")
	}
}

func TestExplain_KeepsStoredRating(t *testing.T) {
	r := &models.RankedResult{CanonicalRecord: rec(0, "A", "thai", models.PriceLow, "India", 4.25, 12)}
	q := models.Query{Cuisines: []string{"thai"}, PriceRanges: []models.PriceRange{models.PriceLow, models.PriceHigh}, TopN: 1}

	want := "Matched on cuisine(s): thai | Price range(s): Low, High | Country: Any | Rating: 4.25 | Votes: 12"
	if got := Explain(r, q); got != want {
		t.Errorf("Explain() = %q, want %q", got, want)
	}
}
