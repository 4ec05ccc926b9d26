package driving

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// CompatibilityViewer drives the compatibility panel for the selected match.
type CompatibilityViewer interface {
	// Select loads compatibility for matchID. Errors never leave the panel
	// empty: a 404 yields the questionnaire state and other failures yield
	// placeholder data. Returns domain.ErrStaleResponse when a newer
	// selection superseded this one.
	Select(ctx context.Context, matchID string) (domain.CompatibilityView, error)

	// Deselect clears the panel.
	Deselect()

	// View returns the current panel state.
	View() domain.CompatibilityView
}

// RecommendationService fetches recommendations for matches.
type RecommendationService interface {
	// ForMatch returns recommendations for the pair formed with matchID.
	ForMatch(ctx context.Context, matchID string) (*domain.RecommendationSet, error)

	// Batch returns recommendations for several matches. Entries fall back
	// to canned recommendations when the batch endpoint fails.
	Batch(ctx context.Context, matchIDs []string) ([]domain.BatchRecommendation, error)
}
