package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure BookmarkService implements the interface.
var _ driving.BookmarkService = (*BookmarkService)(nil)

// BookmarkService keeps the active user's bookmark set in memory and
// writes the full set through to storage on every toggle.
type BookmarkService struct {
	store    driven.BookmarkStore
	sessions SessionSource

	mu     sync.RWMutex
	userID string
	ids    map[string]struct{}
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(store driven.BookmarkStore, sessions SessionSource) *BookmarkService {
	return &BookmarkService{
		store:    store,
		sessions: sessions,
		ids:      make(map[string]struct{}),
	}
}

// Load reads the active user's bookmarks, replacing whatever set was
// held for a previous user.
func (s *BookmarkService) Load(ctx context.Context) error {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, sess.UserID())
}

// Toggle flips membership of matchID and persists the full set.
func (s *BookmarkService) Toggle(ctx context.Context, matchID string) (bool, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return false, fmt.Errorf("%w: match id is required", domain.ErrInvalidInput)
	}

	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID != sess.UserID() {
		if err := s.loadLocked(ctx, sess.UserID()); err != nil {
			return false, err
		}
	}

	_, had := s.ids[matchID]
	if had {
		delete(s.ids, matchID)
	} else {
		s.ids[matchID] = struct{}{}
	}

	if err := s.store.SaveBookmarks(ctx, s.userID, s.sortedLocked()); err != nil {
		if had {
			s.ids[matchID] = struct{}{}
		} else {
			delete(s.ids, matchID)
		}
		return had, fmt.Errorf("save bookmarks: %w", err)
	}

	logger.Debug("Bookmark %s for user %s: %t", matchID, s.userID, !had)
	return !had, nil
}

// IsBookmarked reports membership in the loaded set.
func (s *BookmarkService) IsBookmarked(matchID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[matchID]
	return ok
}

// List returns the bookmarked ids in sorted order.
func (s *BookmarkService) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *BookmarkService) loadLocked(ctx context.Context, userID string) error {
	ids, err := s.store.LoadBookmarks(ctx, userID)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	s.userID = userID
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return nil
}

func (s *BookmarkService) sortedLocked() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
