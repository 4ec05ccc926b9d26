package memory

import (
	"context"
	"sync"

	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
)

// Ensure BookmarkStore implements the interface.
var _ driven.BookmarkStore = (*BookmarkStore)(nil)

// BookmarkStore keeps bookmark sets per user in memory.
type BookmarkStore struct {
	mu    sync.RWMutex
	users map[string][]string

	// saves counts SaveBookmarks calls.
	saves int
}

// NewBookmarkStore creates an empty bookmark store.
func NewBookmarkStore() *BookmarkStore {
	return &BookmarkStore{users: make(map[string][]string)}
}

// LoadBookmarks returns a copy of the user's bookmarks.
func (s *BookmarkStore) LoadBookmarks(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.users[userID]...), nil
}

// SaveBookmarks replaces the user's bookmarks.
func (s *BookmarkStore) SaveBookmarks(_ context.Context, userID string, matchIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = append([]string{}, matchIDs...)
	s.saves++
	return nil
}

// Saves returns how many times SaveBookmarks was called.
func (s *BookmarkStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
