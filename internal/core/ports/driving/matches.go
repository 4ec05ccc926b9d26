package driving

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// MatchCoordinator owns the state of the match list.
// Every method that fetches returns domain.ErrStaleResponse when a newer
// fetch was issued before its response arrived; the state then reflects
// the newer fetch only.
type MatchCoordinator interface {
	// SetFilter updates one filter without fetching.
	SetFilter(name domain.FilterName, value string) error

	// ApplyFilters fetches page 1 with the current filters.
	ApplyFilters(ctx context.Context) error

	// ClearFilters empties every filter and fetches page 1.
	ClearFilters(ctx context.Context) error

	// ChangeSort toggles the order when field is already the sort field,
	// otherwise sorts by field descending. Fetches page 1.
	ChangeSort(ctx context.Context, field domain.SortField) error

	// GoToPage fetches the given page. Pages outside [1, pages] are ignored.
	GoToPage(ctx context.Context, page int) error

	// Search sets the keyword filter and fetches page 1.
	Search(ctx context.Context, keyword string) error

	// SetPageSize changes the page size and fetches page 1.
	SetPageSize(ctx context.Context, size int) error

	// Refresh re-issues the current query.
	Refresh(ctx context.Context) error

	// Snapshot returns a copy of the current state.
	Snapshot() domain.MatchListState
}
