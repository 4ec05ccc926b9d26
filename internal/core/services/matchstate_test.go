package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

func newTestCoordinator(api *mockAPI) *MatchCoordinator {
	search := NewSearchService(api, nil, 0)
	sessions := newFakeSessions(domain.RoleStartup, "s-1")
	return NewMatchCoordinator(search, sessions, domain.SearchSettings{
		PageSize:  10,
		SortBy:    domain.SortMatchScore,
		SortOrder: domain.SortDesc,
	})
}

func TestMatchCoordinator_InitialState(t *testing.T) {
	c := newTestCoordinator(&mockAPI{})

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 10, snap.PageSize)
	assert.Equal(t, domain.SortMatchScore, snap.SortBy)
	assert.Equal(t, domain.SortDesc, snap.SortOrder)
	assert.Equal(t, domain.Idle{}, snap.State)
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loaded)
}

func TestMatchCoordinator_InvalidDefaultsFallBack(t *testing.T) {
	c := NewMatchCoordinator(NewSearchService(&mockAPI{}, nil, 0), newFakeSessions(domain.RoleStartup, "s"),
		domain.SearchSettings{PageSize: 7, SortBy: "nope", SortOrder: "sideways"})

	snap := c.Snapshot()
	assert.Equal(t, domain.DefaultPageSize, snap.PageSize)
	assert.Equal(t, domain.SortCreatedAt, snap.SortBy)
	assert.Equal(t, domain.SortDesc, snap.SortOrder)
}

func TestMatchCoordinator_SearchesCounterpartRole(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, domain.RoleInvestor, api.lastSearch().role)

	snap := c.Snapshot()
	assert.Equal(t, domain.Loaded{}, snap.State)
	assert.True(t, snap.Loaded)
	assert.Len(t, snap.Items, 2)
}

func TestMatchCoordinator_SetFilterDoesNotFetch(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)

	require.NoError(t, c.SetFilter(domain.FilterIndustry, "  Fintech "))
	assert.Zero(t, api.searchCallCount())
	assert.Equal(t, "Fintech", c.Snapshot().Filters.Industry)

	err := c.SetFilter("revenue", "1M")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatchCoordinator_ApplyFiltersResetsPage(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.GoToPage(ctx, 3))
	require.NoError(t, c.SetFilter(domain.FilterLocation, "Berlin"))
	require.NoError(t, c.ApplyFilters(ctx))

	call := api.lastSearch()
	assert.Equal(t, 1, call.opts.Page)
	assert.Equal(t, "Berlin", call.opts.Location)
}

func TestMatchCoordinator_ClearFilters(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.SetFilter(domain.FilterIndustry, "AI"))
	require.NoError(t, c.Search(ctx, "climate"))
	require.NoError(t, c.GoToPage(ctx, 2))

	require.NoError(t, c.ClearFilters(ctx))

	snap := c.Snapshot()
	assert.True(t, snap.Filters.IsEmpty())
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, domain.SearchOptions{
		Page: 1, Limit: 10, SortBy: domain.SortMatchScore, SortOrder: domain.SortDesc,
	}, api.lastSearch().opts)
}

func TestMatchCoordinator_ChangeSort(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.ChangeSort(ctx, domain.SortMatchScore))
	assert.Equal(t, domain.SortAsc, c.Snapshot().SortOrder)

	require.NoError(t, c.ChangeSort(ctx, domain.SortMatchScore))
	assert.Equal(t, domain.SortDesc, c.Snapshot().SortOrder, "double toggle restores the order")

	require.NoError(t, c.ChangeSort(ctx, domain.SortMatchScore))
	require.NoError(t, c.ChangeSort(ctx, domain.SortCompanyName))
	snap := c.Snapshot()
	assert.Equal(t, domain.SortCompanyName, snap.SortBy)
	assert.Equal(t, domain.SortDesc, snap.SortOrder, "new field sorts descending")
	assert.Equal(t, 1, snap.Page)

	err := c.ChangeSort(ctx, "revenue")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatchCoordinator_GoToPage(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	calls := api.searchCallCount()

	for _, page := range []int{0, -1, 4, 100} {
		require.NoError(t, c.GoToPage(ctx, page))
	}
	assert.Equal(t, calls, api.searchCallCount(), "out of range pages do not fetch")

	for _, page := range []int{1, 2, 3} {
		require.NoError(t, c.GoToPage(ctx, page))
		assert.Equal(t, page, c.Snapshot().Pagination.Page)
	}
}

func TestMatchCoordinator_GoToPageBeforeFirstLoad(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)

	require.NoError(t, c.GoToPage(context.Background(), 1))
	assert.Zero(t, api.searchCallCount())
}

func TestMatchCoordinator_SetPageSize(t *testing.T) {
	api := &mockAPI{}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.SetPageSize(ctx, 50))
	assert.Equal(t, 50, api.lastSearch().opts.Limit)
	assert.Equal(t, 50, c.Snapshot().PageSize)

	err := c.SetPageSize(ctx, 15)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 50, c.Snapshot().PageSize)
}

func TestMatchCoordinator_FirstFailureShowsError(t *testing.T) {
	api := &mockAPI{
		searchFn: func(context.Context, domain.Role, domain.SearchOptions) (*domain.SearchResult, error) {
			return nil, fmt.Errorf("dial: %w", domain.ErrTransport)
		},
	}
	c := newTestCoordinator(api)

	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrTransport)

	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loaded)
	assert.ErrorIs(t, domain.FailureOf(snap.State), domain.ErrTransport)
	assert.Equal(t, domain.MsgTryAgain, snap.Error)
}

func TestMatchCoordinator_LaterFailureKeepsItems(t *testing.T) {
	fail := false
	api := &mockAPI{}
	api.searchFn = func(_ context.Context, _ domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
		if fail {
			return nil, domain.ErrServer
		}
		return resultPage(opts.Page, 3, opts.Limit, "a", "b", "c"), nil
	}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	fail = true
	require.Error(t, c.GoToPage(ctx, 2))

	snap := c.Snapshot()
	assert.Len(t, snap.Items, 3, "previous results stay visible")
	assert.Equal(t, 1, snap.Pagination.Page)
	assert.True(t, snap.Loaded)
	assert.NotEmpty(t, snap.Error)
	assert.IsType(t, domain.Failed{}, snap.State)

	fail = false
	require.NoError(t, c.Refresh(ctx))
	snap = c.Snapshot()
	assert.Empty(t, snap.Error)
	assert.Equal(t, domain.Loaded{}, snap.State)
}

func TestMatchCoordinator_FailedFetchRestoresQuery(t *testing.T) {
	fail := false
	api := &mockAPI{}
	api.searchFn = func(_ context.Context, _ domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
		if fail {
			return nil, domain.ErrServer
		}
		return resultPage(opts.Page, 3, opts.Limit, "a", "b"), nil
	}
	c := newTestCoordinator(api)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	fail = true

	require.Error(t, c.ChangeSort(ctx, domain.SortCompanyName))
	require.Error(t, c.GoToPage(ctx, 2))
	require.Error(t, c.Search(ctx, "fintech"))
	require.Error(t, c.SetPageSize(ctx, 50))

	snap := c.Snapshot()
	assert.Equal(t, domain.SortMatchScore, snap.SortBy)
	assert.Equal(t, domain.SortDesc, snap.SortOrder)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 10, snap.PageSize)
	assert.Empty(t, snap.Filters.Keywords)
	assert.Equal(t, snap.Page, snap.Pagination.Page)

	fail = false
	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, domain.SearchOptions{
		Page: 1, Limit: 10, SortBy: domain.SortMatchScore, SortOrder: domain.SortDesc,
	}, api.lastSearch().opts)

	require.NoError(t, c.GoToPage(ctx, 3))
	fail = true
	require.Error(t, c.GoToPage(ctx, 2))
	assert.Equal(t, 3, c.Snapshot().Page, "reverts to the last page that loaded")
}

func TestMatchCoordinator_NoSession(t *testing.T) {
	api := &mockAPI{}
	sessions := &fakeSessions{err: domain.ErrNoSession}
	c := NewMatchCoordinator(NewSearchService(api, nil, 0), sessions, domain.SearchSettings{})

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, domain.MsgLogin, c.Snapshot().Error)
	assert.Zero(t, api.searchCallCount())
}

func TestMatchCoordinator_LastRequestWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	api := &mockAPI{}
	api.searchFn = func(_ context.Context, _ domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
		if opts.Keywords == "slow" {
			close(started)
			<-release
			return resultPage(1, 1, opts.Limit, "slow-result"), nil
		}
		return resultPage(1, 1, opts.Limit, "fast-result"), nil
	}
	c := newTestCoordinator(api)
	ctx := context.Background()

	slowErr := make(chan error, 1)
	go func() { slowErr <- c.Search(ctx, "slow") }()
	<-started

	require.NoError(t, c.Search(ctx, "fast"))
	close(release)

	err := <-slowErr
	assert.True(t, errors.Is(err, domain.ErrStaleResponse))

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fast-result", snap.Items[0].ID)
	assert.Equal(t, "fast", snap.Filters.Keywords)
	assert.Equal(t, domain.Loaded{}, snap.State)
}

func TestMatchCoordinator_SnapshotIsCopy(t *testing.T) {
	c := newTestCoordinator(&mockAPI{})
	require.NoError(t, c.Refresh(context.Background()))

	snap := c.Snapshot()
	snap.Items[0].ID = "mutated"

	assert.NotEqual(t, "mutated", c.Snapshot().Items[0].ID)
}
