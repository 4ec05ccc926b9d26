package domain

// MatchListState is a snapshot of what the match list displays.
type MatchListState struct {
	Filters   Filters
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	PageSize  int

	// Items and Pagination hold the last successful fetch. They are kept
	// when a later fetch fails.
	Items      []Match
	Pagination Pagination

	// State is the status of the most recent fetch.
	State LoadState

	// Error is the user-facing message of the most recent failure,
	// empty once a later fetch succeeds.
	Error string

	// Loaded is true once any fetch has succeeded.
	Loaded bool
}

// Query returns the search options the state describes.
func (s MatchListState) Query() SearchOptions {
	return SearchOptions{
		Page:      s.Page,
		Limit:     s.PageSize,
		SortBy:    s.SortBy,
		SortOrder: s.SortOrder,
	}.WithFilters(s.Filters)
}

// CompatibilityView is a snapshot of the compatibility panel.
type CompatibilityView struct {
	State   CompatState
	MatchID string

	// Data is set in the shown and fallback states.
	Data *CompatibilityData

	// Message is the user-facing text for the fallback and questionnaire
	// states.
	Message string
}

// Dashboard is the result of the initial load.
type Dashboard struct {
	Session       *Session
	FilterOptions FilterOptions
	Bookmarks     []string
	Matches       MatchListState
}
