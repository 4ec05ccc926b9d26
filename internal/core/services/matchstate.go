package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure MatchCoordinator implements the interface.
var _ driving.MatchCoordinator = (*MatchCoordinator)(nil)

// MatchCoordinator owns the match list state.
//
// Each fetch takes the next sequence number. A response is applied only
// if its number is still the latest, so the last request issued always
// wins regardless of the order responses arrive in.
type MatchCoordinator struct {
	search   driving.SearchService
	sessions SessionSource

	mu    sync.Mutex
	seq   uint64
	state domain.MatchListState

	// shown is the query behind the displayed items. A failed fetch
	// restores it so sort, page and filters keep describing the rows.
	shown listQuery
}

// listQuery holds the query fields of a MatchListState.
type listQuery struct {
	filters   domain.Filters
	sortBy    domain.SortField
	sortOrder domain.SortOrder
	page      int
	pageSize  int
}

func queryOf(s *domain.MatchListState) listQuery {
	return listQuery{
		filters:   s.Filters,
		sortBy:    s.SortBy,
		sortOrder: s.SortOrder,
		page:      s.Page,
		pageSize:  s.PageSize,
	}
}

func (q listQuery) restore(s *domain.MatchListState) {
	s.Filters = q.filters
	s.SortBy = q.sortBy
	s.SortOrder = q.sortOrder
	s.Page = q.page
	s.PageSize = q.pageSize
}

// NewMatchCoordinator creates a coordinator whose initial query uses the
// given search settings.
func NewMatchCoordinator(
	search driving.SearchService,
	sessions SessionSource,
	defaults domain.SearchSettings,
) *MatchCoordinator {
	base := domain.DefaultSearchOptions()
	if domain.IsValidPageSize(defaults.PageSize) {
		base.Limit = defaults.PageSize
	}
	if defaults.SortBy.IsValid() {
		base.SortBy = defaults.SortBy
	}
	if defaults.SortOrder.IsValid() {
		base.SortOrder = defaults.SortOrder
	}

	c := &MatchCoordinator{
		search:   search,
		sessions: sessions,
		state: domain.MatchListState{
			SortBy:    base.SortBy,
			SortOrder: base.SortOrder,
			Page:      base.Page,
			PageSize:  base.Limit,
			Items:     []domain.Match{},
			State:     domain.Idle{},
		},
	}
	c.shown = queryOf(&c.state)
	return c
}

// SetFilter updates one filter without fetching.
func (c *MatchCoordinator) SetFilter(name domain.FilterName, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Filters.Set(name, value) {
		return fmt.Errorf("%w: unknown filter %q", domain.ErrInvalidInput, name)
	}
	return nil
}

// ApplyFilters fetches page 1 with the current filters.
func (c *MatchCoordinator) ApplyFilters(ctx context.Context) error {
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		s.Page = 1
		return true
	})
}

// ClearFilters empties every filter and fetches page 1.
func (c *MatchCoordinator) ClearFilters(ctx context.Context) error {
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		s.Filters.Clear()
		s.Page = 1
		return true
	})
}

// ChangeSort toggles the order when field is the current sort field and
// otherwise sorts by field descending.
func (c *MatchCoordinator) ChangeSort(ctx context.Context, field domain.SortField) error {
	if !field.IsValid() {
		return fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidInput, field)
	}
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		if s.SortBy == field {
			s.SortOrder = s.SortOrder.Toggle()
		} else {
			s.SortBy = field
			s.SortOrder = domain.SortDesc
		}
		s.Page = 1
		return true
	})
}

// GoToPage fetches page. Pages outside the known range are ignored.
func (c *MatchCoordinator) GoToPage(ctx context.Context, page int) error {
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		if !s.Pagination.Contains(page) {
			logger.Debug("Ignoring page %d outside [1, %d]", page, s.Pagination.Pages)
			return false
		}
		s.Page = page
		return true
	})
}

// Search sets the keyword filter and fetches page 1.
func (c *MatchCoordinator) Search(ctx context.Context, keyword string) error {
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		s.Filters.Set(domain.FilterKeywords, keyword)
		s.Page = 1
		return true
	})
}

// SetPageSize changes the page size and fetches page 1.
func (c *MatchCoordinator) SetPageSize(ctx context.Context, size int) error {
	if !domain.IsValidPageSize(size) {
		return fmt.Errorf("%w: page size must be one of %v", domain.ErrInvalidInput, domain.PageSizes)
	}
	return c.fetch(ctx, func(s *domain.MatchListState) bool {
		s.PageSize = size
		s.Page = 1
		return true
	})
}

// Refresh re-issues the current query.
func (c *MatchCoordinator) Refresh(ctx context.Context) error {
	return c.fetch(ctx, func(*domain.MatchListState) bool { return true })
}

// Snapshot returns a copy of the current state.
func (c *MatchCoordinator) Snapshot() domain.MatchListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.state
	snap.Items = append([]domain.Match(nil), c.state.Items...)
	return snap
}

// fetch applies mutate to the state and, when it returns true, issues the
// resulting query. The response is dropped if another fetch started in
// the meantime. On failure the query fields revert to the last successful
// query.
func (c *MatchCoordinator) fetch(ctx context.Context, mutate func(*domain.MatchListState) bool) error {
	c.mu.Lock()
	if !mutate(&c.state) {
		c.mu.Unlock()
		return nil
	}
	c.seq++
	token := c.seq
	query := c.state.Query()
	c.state.State = domain.Loading{}
	c.mu.Unlock()

	result, err := c.run(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		logger.Debug("Discarding response %d, latest is %d", token, c.seq)
		return domain.ErrStaleResponse
	}

	if err != nil {
		c.state.State = domain.Failed{Err: err}
		c.state.Error = domain.UserMessage(err)
		if !c.state.Loaded {
			c.state.Items = []domain.Match{}
			c.state.Pagination = domain.Pagination{}
		}
		c.shown.restore(&c.state)
		if !errors.Is(err, context.Canceled) {
			logger.Named("matches").Warn("match fetch failed",
				zap.Int("page", query.Page), zap.Bool("stale_items_kept", c.state.Loaded), zap.Error(err))
		}
		return err
	}

	c.state.Items = result.Items
	if c.state.Items == nil {
		c.state.Items = []domain.Match{}
	}
	c.state.Pagination = result.Pagination
	c.shown = queryOf(&c.state)
	c.state.State = domain.Loaded{}
	c.state.Error = ""
	c.state.Loaded = true
	return nil
}

func (c *MatchCoordinator) run(ctx context.Context, query domain.SearchOptions) (*domain.SearchResult, error) {
	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return c.search.Search(ctx, sess.Role().Counterpart(), query)
}
