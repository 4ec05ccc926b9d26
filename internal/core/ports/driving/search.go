package driving

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// SearchService lists matches and filter facets.
type SearchService interface {
	// Search returns one page of counterparts of the given role.
	// Options are validated before any request is made. Failures are
	// returned to the caller without retry.
	Search(ctx context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error)

	// FilterOptions returns the facet lists. It never fails: on error the
	// lists are empty.
	FilterOptions(ctx context.Context) domain.FilterOptions
}
