package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/macrolens/bakecalc/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ProductSearchConfig holds configuration for the product search service
type ProductSearchConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// SearchResult is the outcome of an asynchronous product search
type SearchResult struct {
	Query    string
	Products []domain.Product
	Err      error
}

// ProductSearchService looks up candidate ingredients in the remote product
// database. It never writes to the ingredient database on its own; callers
// pass chosen products to Ingest.
type ProductSearchService struct {
	cache        domain.CacheRepository
	searcher     domain.ProductSearcher
	preprocessor *QueryPreprocessor
	cacheTTL     time.Duration
	debug        bool
}

// NewProductSearchService creates a new product search service with dependencies
func NewProductSearchService(
	cache domain.CacheRepository,
	searcher domain.ProductSearcher,
	config ProductSearchConfig,
) *ProductSearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProductSearchService{
		cache:        cache,
		searcher:     searcher,
		preprocessor: NewQueryPreprocessor(config.EnableDebugLogging),
		cacheTTL:     cacheTTL,
		debug:        config.EnableDebugLogging,
	}
}

// Search returns the products matching a free-text query.
// Flow: clean query -> check cache -> search upstream -> cache -> return
func (s *ProductSearchService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	cleaned := s.preprocessor.PreprocessQuery(query)
	if cleaned == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := generateCacheKey(cleaned)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if s.debug {
			log.Printf("[SEARCH] Cache hit for %q (%d products)", cleaned, len(cached))
		}
		return cached, nil
	}

	products, err := s.searcher.SearchProducts(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, products, s.cacheTTL); err != nil {
		log.Printf("[SEARCH] Failed to cache results for %q: %v", cleaned, err)
	}

	return products, nil
}

// SearchAsync runs Search in the background. The returned channel receives exactly
// one result and is then closed. Cancelling ctx aborts the upstream request.
func (s *ProductSearchService) SearchAsync(ctx context.Context, query string) <-chan SearchResult {
	out := make(chan SearchResult, 1)

	go func() {
		defer close(out)
		products, err := s.Search(ctx, query)
		out <- SearchResult{Query: query, Products: products, Err: err}
	}()

	return out
}

// FindProduct searches for query and returns the hit with the given code
func (s *ProductSearchService) FindProduct(ctx context.Context, query, code string) (domain.Product, error) {
	products, err := s.Search(ctx, query)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.Code == code {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: no product with code %q for %q", domain.ErrProductNotFound, code, query)
}

// Ingest stores a product in the ingredient database under name, or under the
// product's own name when name is blank. It returns the name used.
func (s *ProductSearchService) Ingest(db domain.IngredientDatabase, product domain.Product, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(product.Name)
	}
	if name == "" {
		return "", fmt.Errorf("%w: ingredient name is required", domain.ErrInvalidRequest)
	}

	db.InsertOrReplace(name, product.Profile)
	log.Printf("[SEARCH] Imported product %s as ingredient %q", product.Code, name)

	return name, nil
}

// generateCacheKey creates a normalized cache key from a cleaned query.
// Format: "products:{normalized_query}"
func generateCacheKey(query string) string {
	return fmt.Sprintf("products:%s", normalizeForCacheKey(query))
}

// normalizeForCacheKey lowercases, drops punctuation and collapses whitespace
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
