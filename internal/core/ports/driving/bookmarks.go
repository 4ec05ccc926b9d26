package driving

import "context"

// BookmarkService manages the active user's bookmarks.
type BookmarkService interface {
	// Load reads the active user's bookmarks from storage.
	Load(ctx context.Context) error

	// Toggle flips membership of matchID and persists the full set.
	// Returns the new membership.
	Toggle(ctx context.Context, matchID string) (bool, error)

	// IsBookmarked reports membership without touching storage.
	IsBookmarked(matchID string) bool

	// List returns the bookmarked ids in sorted order.
	List() []string
}
