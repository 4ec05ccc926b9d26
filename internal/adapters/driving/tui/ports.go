// Package tui provides an interactive terminal dashboard for karmicdd.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dashboard performs the initial load.
	Dashboard driving.DashboardService

	// Matches owns the match list state.
	Matches driving.MatchCoordinator

	// Bookmarks manages the user's bookmarks.
	Bookmarks driving.BookmarkService

	// Compatibility drives the compatibility panel.
	Compatibility driving.CompatibilityViewer

	// Recommendations fetches advice for the selected match.
	Recommendations driving.RecommendationService

	// Search provides filter facets.
	Search driving.SearchService

	// Session resolves the logged-in user.
	Session driving.SessionService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Recommendations and Settings are optional.
func (p *Ports) Validate() error {
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Matches == nil {
		return ErrMissingMatchCoordinator
	}
	if p.Bookmarks == nil {
		return ErrMissingBookmarkService
	}
	if p.Compatibility == nil {
		return ErrMissingCompatibilityViewer
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
