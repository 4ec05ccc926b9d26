package driven

import "context"

// BookmarkStore persists bookmarked match ids per user.
type BookmarkStore interface {
	// LoadBookmarks returns the user's bookmarked ids.
	// Returns an empty slice for a user with no bookmarks.
	LoadBookmarks(ctx context.Context, userID string) ([]string, error)

	// SaveBookmarks replaces the user's full bookmark set.
	SaveBookmarks(ctx context.Context, userID string, matchIDs []string) error
}
