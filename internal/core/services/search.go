package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const filterOptionsCacheKey = "filter-options"

// SearchService validates queries and calls the search endpoints.
type SearchService struct {
	api      driven.SearchAPI
	cache    driven.Cache
	cacheTTL time.Duration
	validate *validator.Validate
}

// NewSearchService creates a new search service.
// cache is optional; when nil filter options are fetched on every call.
func NewSearchService(api driven.SearchAPI, cache driven.Cache, cacheTTL time.Duration) *SearchService {
	return &SearchService{
		api:      api,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: newValidator(),
	}
}

// Search returns one page of counterparts of the given role.
func (s *SearchService) Search(
	ctx context.Context,
	role domain.Role,
	opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Role: %s, page %d, limit %d, sort %s %s", role, opts.Page, opts.Limit, opts.SortBy, opts.SortOrder)

	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if err := validateStruct(s.validate, opts); err != nil {
		return nil, err
	}
	if !opts.Filters().IsEmpty() {
		logger.Debug("Filters: %+v", opts.Filters())
	}

	result, err := s.api.Search(ctx, role, opts)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", role.Plural(), err)
	}

	logger.Debug("Got %d of %d %s (page %d/%d)",
		len(result.Items), result.Pagination.Total, role.Plural(), result.Pagination.Page, result.Pagination.Pages)
	return result, nil
}

// FilterOptions returns the facet lists. Failures are logged and yield
// empty lists.
func (s *SearchService) FilterOptions(ctx context.Context) domain.FilterOptions {
	log := logger.Named("search")

	if cached, ok := s.cachedFilterOptions(ctx); ok {
		logger.Debug("Filter options served from cache")
		return cached
	}

	opts, err := s.api.FilterOptions(ctx)
	if err != nil {
		log.Warn("filter options unavailable, using empty lists", zap.Error(err))
		return domain.EmptyFilterOptions()
	}
	if opts == nil {
		return domain.EmptyFilterOptions()
	}

	normalized := opts.Normalize()
	s.storeFilterOptions(ctx, normalized)
	return normalized
}

func (s *SearchService) cachedFilterOptions(ctx context.Context) (domain.FilterOptions, bool) {
	if s.cache == nil {
		return domain.FilterOptions{}, false
	}
	raw, ok, err := s.cache.Get(ctx, filterOptionsCacheKey)
	if err != nil {
		logger.Named("search").Debug("cache read failed", zap.Error(err))
		return domain.FilterOptions{}, false
	}
	if !ok {
		return domain.FilterOptions{}, false
	}
	var opts domain.FilterOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return domain.FilterOptions{}, false
	}
	return opts.Normalize(), true
}

func (s *SearchService) storeFilterOptions(ctx context.Context, opts domain.FilterOptions) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, filterOptionsCacheKey, raw, s.cacheTTL); err != nil {
		logger.Named("search").Debug("cache write failed", zap.Error(err))
	}
}
