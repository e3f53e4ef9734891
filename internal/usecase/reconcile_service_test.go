package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/catifypro/matcher/internal/domain"
	"github.com/catifypro/matcher/internal/matcher"
)

// fakeCache is a map-backed ProductCache that records Set calls.
type fakeCache struct {
	data map[string][]domain.Product
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]domain.Product)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]domain.Product, error) {
	products, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return products, nil
}

func (c *fakeCache) Set(_ context.Context, key string, products []domain.Product, _ time.Duration) error {
	c.data[key] = products
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// fakeCatalog serves a fixed product list and counts backend hits.
type fakeCatalog struct {
	products map[string][]domain.Product
	err      error
	calls    int
}

func (f *fakeCatalog) ListProducts(_ context.Context, tenantID string) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products[tenantID], nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrTenantNotFound
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", TenantID: "t1", SKU: "PROD001", Name: "Camisa Azul"},
		{ID: "p2", TenantID: "t1", SKU: "PROD002", Name: "Zapatos Negros 42"},
		{ID: "p3", TenantID: "t1", SKU: "PROD003", Name: "Gorra Roja"},
	}
}

func newTestService(catalog *fakeCatalog, cache *fakeCache) *ReconcileService {
	return NewReconcileService(cache, catalog, matcher.DefaultConfig(), ReconcileConfig{
		CacheTTL:     time.Minute,
		MaxBatchSize: 10,
	})
}

func TestReconcileValidation(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, newFakeCache())
	ctx := context.Background()

	t.Run("empty tenant", func(t *testing.T) {
		_, err := svc.Reconcile(ctx, "", []string{"a.jpg"})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("no filenames", func(t *testing.T) {
		_, err := svc.Reconcile(ctx, "t1", nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("oversized batch", func(t *testing.T) {
		filenames := make([]string, 11)
		for i := range filenames {
			filenames[i] = "img.jpg"
		}
		_, err := svc.Reconcile(ctx, "t1", filenames)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		_, err := svc.Reconcile(ctx, "t1", []string{"a.jpg"})
		if !errors.Is(err, domain.ErrEmptyCatalog) {
			t.Errorf("error = %v, want ErrEmptyCatalog", err)
		}
	})
}

func TestReconcileTriage(t *testing.T) {
	catalog := &fakeCatalog{products: map[string][]domain.Product{"t1": testProducts()}}
	svc := newTestService(catalog, newFakeCache())
	ctx := context.Background()

	result, err := svc.Reconcile(ctx, "t1", []string{
		"PROD001.jpg",                // exact sku -> matched
		"fotos/PROD002_side.png",     // query contains sku -> matched
		"zapatos negros.jpg",         // name containment, medium -> review
		"sin_relacion_alguna_99.jpg", // nothing plausible -> unmatched
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.JobID == "" {
		t.Error("JobID is empty")
	}
	if result.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1", result.TenantID)
	}
	if len(result.Images) != 4 {
		t.Fatalf("len(Images) = %d, want 4", len(result.Images))
	}

	wantStatus := []domain.MatchStatus{
		domain.StatusMatched,
		domain.StatusMatched,
		domain.StatusReview,
		domain.StatusUnmatched,
	}
	for i, want := range wantStatus {
		if result.Images[i].Status != want {
			t.Errorf("Images[%d].Status = %q, want %q (query %q)",
				i, result.Images[i].Status, want, result.Images[i].Query)
		}
	}

	if result.Matched != 2 || result.Review != 1 || result.Unmatched != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", result.Matched, result.Review, result.Unmatched)
	}

	t.Run("matched image carries the right product", func(t *testing.T) {
		first := result.Images[0]
		if len(first.Suggestions) == 0 {
			t.Fatal("no suggestions for exact match")
		}
		if first.Suggestions[0].Product.ID != "p1" {
			t.Errorf("top suggestion = %q, want p1", first.Suggestions[0].Product.ID)
		}
		if first.Suggestions[0].Method != "exact" {
			t.Errorf("method = %q, want exact", first.Suggestions[0].Method)
		}
	})
}

func TestReconcileUsesCache(t *testing.T) {
	catalog := &fakeCatalog{products: map[string][]domain.Product{"t1": testProducts()}}
	cache := newFakeCache()
	svc := newTestService(catalog, cache)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "t1", []string{"PROD001.jpg"}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if _, err := svc.Reconcile(ctx, "t1", []string{"PROD002.jpg"}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	if catalog.calls != 1 {
		t.Errorf("catalog backend calls = %d, want 1 (second batch should hit cache)", catalog.calls)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
}

func TestReconcileCatalogFailure(t *testing.T) {
	catalog := &fakeCatalog{err: domain.ErrCatalogAPIFailure}
	svc := newTestService(catalog, newFakeCache())

	_, err := svc.Reconcile(context.Background(), "t1", []string{"a.jpg"})
	if !errors.Is(err, domain.ErrCatalogAPIFailure) {
		t.Errorf("error = %v, want ErrCatalogAPIFailure", err)
	}
}

func TestReconcileContextCancellation(t *testing.T) {
	catalog := &fakeCatalog{products: map[string][]domain.Product{"t1": testProducts()}}
	svc := newTestService(catalog, newFakeCache())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reconcile(ctx, "t1", []string{"a.jpg", "b.jpg"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRank(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, newFakeCache())

	suggestions := svc.Rank("prod001_front", testProducts())
	if len(suggestions) == 0 {
		t.Fatal("no suggestions")
	}
	if suggestions[0].Product.SKU != "PROD001" {
		t.Errorf("top SKU = %q, want PROD001", suggestions[0].Product.SKU)
	}
	if suggestions[0].Score != 0.85 {
		t.Errorf("score = %v, want 0.85 (containment)", suggestions[0].Score)
	}
}
