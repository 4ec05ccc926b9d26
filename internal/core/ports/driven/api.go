package driven

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// SearchAPI lists matches and filter facets.
type SearchAPI interface {
	// Search returns one page of counterparts of the given role.
	// Empty filters in opts are omitted from the request.
	Search(ctx context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error)

	// FilterOptions returns the facet values for the filter UI.
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

// CompatibilityAPI fetches compatibility breakdowns.
type CompatibilityAPI interface {
	// Compatibility returns the breakdown for an ordered pair.
	// Returns an error wrapping domain.ErrNotFound when no data exists yet.
	Compatibility(ctx context.Context, startupID, investorID string) (*domain.CompatibilityData, error)
}

// RecommendationAPI fetches recommendations.
type RecommendationAPI interface {
	// MatchRecommendations returns recommendations for an ordered pair.
	MatchRecommendations(ctx context.Context, startupID, investorID string) (*domain.RecommendationSet, error)

	// BatchRecommendations returns recommendations for several matches of
	// the logged-in user.
	BatchRecommendations(ctx context.Context, matchIDs []string) ([]domain.BatchRecommendation, error)
}

// ProfileAPI identifies the logged-in user.
type ProfileAPI interface {
	// UserProfile returns the profile of the token's owner.
	UserProfile(ctx context.Context) (*domain.Profile, error)
}

// MatchAPI is the full REST surface used by the core.
type MatchAPI interface {
	SearchAPI
	CompatibilityAPI
	RecommendationAPI
	ProfileAPI
}
