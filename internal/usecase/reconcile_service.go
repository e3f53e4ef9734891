package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/catifypro/matcher/internal/domain"
	"github.com/catifypro/matcher/internal/matcher"
)

// maxSuggestions caps how many ranked candidates are reported per image.
// Review screens show a short list; anything past the first few is noise.
const maxSuggestions = 5

// ReconcileConfig holds configuration for the reconcile service
type ReconcileConfig struct {
	CacheTTL           time.Duration
	MaxBatchSize       int
	EnableDebugLogging bool
}

// ReconcileService pairs batches of uploaded image filenames with a tenant's
// catalog products.
// Flow per batch: load catalog (cache -> backend) -> derive a query per
// filename -> run the matcher -> triage into matched/review/unmatched.
type ReconcileService struct {
	cache              domain.ProductCache
	catalog            domain.CatalogClient
	matcher            *matcher.Matcher[domain.Product]
	cacheTTL           time.Duration
	maxBatchSize       int
	enableDebugLogging bool
}

// NewReconcileService creates a reconcile service with its dependencies.
func NewReconcileService(
	cache domain.ProductCache,
	catalog domain.CatalogClient,
	matcherCfg matcher.Config,
	config ReconcileConfig,
) *ReconcileService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	maxBatch := config.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = 500
	}

	return &ReconcileService{
		cache:              cache,
		catalog:            catalog,
		matcher:            matcher.New[domain.Product](matcherCfg),
		cacheTTL:           cacheTTL,
		maxBatchSize:       maxBatch,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Reconcile matches every filename in the batch against the tenant's catalog
// and returns the per-image triage.
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	tenantID string,
	filenames []string,
) (*domain.ReconcileResult, error) {
	if tenantID == "" || len(filenames) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	if len(filenames) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit %d",
			domain.ErrInvalidRequest, len(filenames), s.maxBatchSize)
	}

	products, err := s.loadProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	candidates := toCandidates(products)

	result := &domain.ReconcileResult{
		JobID:     uuid.NewString(),
		TenantID:  tenantID,
		Images:    make([]domain.ImageMatch, 0, len(filenames)),
		StartedAt: time.Now().UTC(),
	}

	for _, filename := range filenames {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		query := DeriveQuery(filename)
		ranked := s.matcher.Match(query, candidates)

		image := triage(filename, query, ranked)
		switch image.Status {
		case domain.StatusMatched:
			result.Matched++
		case domain.StatusReview:
			result.Review++
		default:
			result.Unmatched++
		}

		if s.enableDebugLogging {
			log.Printf("[RECONCILE] %q -> %q: %s (%d suggestions)",
				filename, query, image.Status, len(image.Suggestions))
		}

		result.Images = append(result.Images, image)
	}

	result.FinishedAt = time.Now().UTC()
	return result, nil
}

// Rank scores a single free-text query against an explicit product list,
// bypassing catalog lookup. Used by the direct match endpoint.
func (s *ReconcileService) Rank(query string, products []domain.Product) []domain.Suggestion {
	return toSuggestions(s.matcher.Match(query, toCandidates(products)))
}

// loadProducts returns the tenant catalog, going to the backend only on a
// cache miss.
func (s *ReconcileService) loadProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	cacheKey := "catalog:" + tenantID

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if s.enableDebugLogging {
			log.Printf("[RECONCILE] catalog cache hit for tenant %s (%d products)", tenantID, len(cached))
		}
		return cached, nil
	}

	products, err := s.catalog.ListProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, products, s.cacheTTL); err != nil {
		// A dead cache should not fail the batch
		log.Printf("[RECONCILE] failed to cache catalog for tenant %s: %v", tenantID, err)
	}

	return products, nil
}

// triage converts a ranked result list into the per-image outcome. A
// high-confidence top result is auto-acceptable; anything else plausible
// goes to human review.
func triage(filename, query string, ranked []matcher.Result[domain.Product]) domain.ImageMatch {
	image := domain.ImageMatch{
		Filename: filename,
		Query:    query,
		Status:   domain.StatusUnmatched,
	}

	if len(ranked) == 0 {
		return image
	}

	image.Suggestions = toSuggestions(ranked)
	if ranked[0].Confidence == matcher.ConfidenceHigh {
		image.Status = domain.StatusMatched
	} else {
		image.Status = domain.StatusReview
	}

	return image
}

func toCandidates(products []domain.Product) []matcher.Candidate[domain.Product] {
	out := make([]matcher.Candidate[domain.Product], 0, len(products))
	for _, p := range products {
		out = append(out, matcher.Candidate[domain.Product]{
			SKU:     p.SKU,
			Name:    p.Name,
			Payload: p,
		})
	}
	return out
}

func toSuggestions(ranked []matcher.Result[domain.Product]) []domain.Suggestion {
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	out := make([]domain.Suggestion, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, domain.Suggestion{
			Product:    r.Candidate.Payload,
			Score:      r.Score,
			Confidence: string(r.Confidence),
			Method:     string(r.Method),
		})
	}
	return out
}
