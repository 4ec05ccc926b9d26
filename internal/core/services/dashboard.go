package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// DashboardService performs the initial load of the matches screen.
type DashboardService struct {
	sessions  SessionSource
	search    driving.SearchService
	bookmarks driving.BookmarkService
	matches   driving.MatchCoordinator
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	sessions SessionSource,
	search driving.SearchService,
	bookmarks driving.BookmarkService,
	matches driving.MatchCoordinator,
) *DashboardService {
	return &DashboardService{
		sessions:  sessions,
		search:    search,
		bookmarks: bookmarks,
		matches:   matches,
	}
}

// Load resolves the session and then loads facets, bookmarks and the
// first page of matches concurrently. A failed match fetch is reported in
// the returned state rather than as an error.
func (d *DashboardService) Load(ctx context.Context) (*domain.Dashboard, error) {
	logger.Section("Dashboard")

	sess, err := d.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	var options domain.FilterOptions
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		options = d.search.FilterOptions(gctx)
		return nil
	})
	g.Go(func() error {
		if err := d.bookmarks.Load(gctx); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := d.matches.Refresh(gctx)
		if err != nil && !errors.Is(err, domain.ErrStaleResponse) {
			logger.Debug("First match page failed: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Session:       sess,
		FilterOptions: options,
		Bookmarks:     d.bookmarks.List(),
		Matches:       d.matches.Snapshot(),
	}, nil
}
