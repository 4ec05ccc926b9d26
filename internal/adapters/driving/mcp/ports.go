package mcp

import (
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Search runs match searches and lists filter options.
	Search driving.SearchService

	// Session resolves the logged-in user and therefore the counterpart role.
	Session driving.SessionService

	// Compatibility loads the breakdown for a match. Optional.
	Compatibility driving.CompatibilityViewer

	// Recommendations loads advice for a match. Optional.
	Recommendations driving.RecommendationService

	// Bookmarks lists and toggles bookmarks. Optional.
	Bookmarks driving.BookmarkService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
