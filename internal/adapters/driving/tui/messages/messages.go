// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewMatches is the match list with filters and paging.
	ViewMatches
	// ViewCompatibility shows the compatibility panel for the selected match.
	ViewCompatibility
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewMatches:
		return "matches"
	case ViewCompatibility:
		return "compatibility"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DashboardLoaded carries the result of the initial load.
type DashboardLoaded struct {
	Dashboard *domain.Dashboard
	Err       error
}

// MatchesLoaded carries the match list state after a fetch resolved.
// Err is domain.ErrStaleResponse when a newer fetch superseded this one.
type MatchesLoaded struct {
	State domain.MatchListState
	Err   error
}

// MatchSelected asks the compatibility view to load a match.
type MatchSelected struct {
	Match domain.Match
}

// CompatibilityLoaded carries the compatibility panel after a selection
// resolved.
type CompatibilityLoaded struct {
	View domain.CompatibilityView
	Err  error
}

// RecommendationsLoaded carries recommendations for a match.
type RecommendationsLoaded struct {
	MatchID string
	Set     *domain.RecommendationSet
	Err     error
}

// BookmarkToggled signals a bookmark flip completed.
type BookmarkToggled struct {
	MatchID    string
	Bookmarked bool
	Err        error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
