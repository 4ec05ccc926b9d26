package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("searches the counterpart role", func(t *testing.T) {
		search := &mockSearchService{
			result: &domain.SearchResult{
				Items: []domain.Match{{
					ID:                   "inv-1",
					CompanyName:          "Seed Capital",
					MatchScore:           87,
					IndustriesOfInterest: []string{"Fintech", "SaaS"},
					PreferredStages:      []string{"Seed"},
					Location:             "Berlin",
					IsNew:                true,
				}},
				Pagination: domain.Pagination{Total: 1, Page: 1, Pages: 1, Limit: 10},
			},
		}
		ports := newTestPorts()
		ports.Search = search
		ports.Bookmarks = &mockBookmarkService{ids: []string{"inv-1"}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Keyword: "seed", Industry: "Fintech"})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleInvestor, search.gotRole)
		assert.Equal(t, "investor", output.Role)
		assert.Equal(t, 1, output.Total)
		require.Len(t, output.Matches, 1)
		m := output.Matches[0]
		assert.Equal(t, "inv-1", m.ID)
		assert.Equal(t, "Seed Capital", m.CompanyName)
		assert.Equal(t, 87.0, m.Score)
		assert.Equal(t, []string{"Fintech", "SaaS"}, m.Industries)
		assert.True(t, m.IsNew)
		assert.True(t, m.Bookmarked)
	})

	t.Run("applies defaults and overrides", func(t *testing.T) {
		search := &mockSearchService{}
		ports := newTestPorts()
		ports.Search = search
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{
			Location:  "Paris",
			SortBy:    "matchScore",
			SortOrder: "ASC",
			Page:      3,
			Limit:     20,
		})

		require.NoError(t, err)
		opts := search.gotOpts
		assert.Equal(t, 3, opts.Page)
		assert.Equal(t, 20, opts.Limit)
		assert.Equal(t, domain.SortMatchScore, opts.SortBy)
		assert.Equal(t, domain.SortAsc, opts.SortOrder)
		assert.Equal(t, "Paris", opts.Location)
		assert.Empty(t, opts.Industry)
	})

	t.Run("empty input uses server defaults", func(t *testing.T) {
		opts := searchOptions(SearchInput{})
		assert.Equal(t, domain.DefaultSearchOptions(), opts)
	})

	t.Run("no session", func(t *testing.T) {
		ports := newTestPorts()
		ports.Session = &mockSessionService{err: domain.ErrNoSession}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSession)
		assert.Contains(t, err.Error(), domain.MsgLogin)
	})

	t.Run("search failure", func(t *testing.T) {
		ports := newTestPorts()
		ports.Search = &mockSearchService{err: errors.New("connection refused")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestServer_handleFilterOptions(t *testing.T) {
	ports := newTestPorts()
	ports.Search = &mockSearchService{options: domain.FilterOptions{Industries: []string{"AI"}}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleFilterOptions(context.Background(), nil, FilterOptionsInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"AI"}, output.Industries)
	assert.NotNil(t, output.FundingStages)
	assert.Empty(t, output.FundingStages)
}

func TestServer_handleCompatibility(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable without viewer", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		_, _, err = server.handleCompatibility(ctx, nil, MatchInput{MatchID: "inv-1"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("requires match id", func(t *testing.T) {
		ports := newTestPorts()
		ports.Compatibility = &mockCompatibilityViewer{}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleCompatibility(ctx, nil, MatchInput{MatchID: " "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("fallback data is marked estimated", func(t *testing.T) {
		fb := domain.FallbackCompatibility()
		ports := newTestPorts()
		ports.Compatibility = &mockCompatibilityViewer{view: domain.CompatibilityView{
			State: domain.CompatFallback,
			Data:  &fb,
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleCompatibility(ctx, nil, MatchInput{MatchID: "inv-1"})

		require.NoError(t, err)
		assert.Equal(t, "inv-1", output.MatchID)
		assert.Equal(t, "fallback", output.State)
		assert.True(t, output.Estimated)
		assert.Equal(t, 78.0, output.Overall)
		assert.Equal(t, 90.0, output.Breakdown["Sector Focus"])
		assert.Len(t, output.Breakdown, 5)
		assert.Len(t, output.Insights, 4)
	})

	t.Run("questionnaire state carries message only", func(t *testing.T) {
		ports := newTestPorts()
		ports.Compatibility = &mockCompatibilityViewer{view: domain.CompatibilityView{
			State:   domain.CompatQuestionnaire,
			Message: domain.MsgQuestionnaire,
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleCompatibility(ctx, nil, MatchInput{MatchID: "inv-2"})

		require.NoError(t, err)
		assert.Equal(t, "questionnaire", output.State)
		assert.Equal(t, domain.MsgQuestionnaire, output.Message)
		assert.Nil(t, output.Breakdown)
	})

	t.Run("stale response is reported", func(t *testing.T) {
		ports := newTestPorts()
		ports.Compatibility = &mockCompatibilityViewer{err: domain.ErrStaleResponse}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleCompatibility(ctx, nil, MatchInput{MatchID: "inv-1"})
		assert.ErrorIs(t, err, domain.ErrStaleResponse)
	})
}

func TestServer_handleRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted by priority", func(t *testing.T) {
		ports := newTestPorts()
		ports.Recommendations = &mockRecommendationService{set: &domain.RecommendationSet{
			Precision: 81,
			Recommendations: []domain.Recommendation{
				{Title: "Later", Priority: domain.PriorityLow, Category: domain.CategoryGrowth},
				{Title: "First", Priority: domain.PriorityHigh, Category: domain.CategoryStrategic},
				{Title: "Middle", Priority: domain.PriorityMedium, Category: domain.CategoryFinancial},
			},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRecommendations(ctx, nil, MatchInput{MatchID: "inv-1"})

		require.NoError(t, err)
		assert.Equal(t, 81.0, output.Precision)
		assert.False(t, output.Generic)
		require.Len(t, output.Recommendations, 3)
		assert.Equal(t, "First", output.Recommendations[0].Title)
		assert.Equal(t, "high", output.Recommendations[0].Priority)
		assert.Equal(t, "Middle", output.Recommendations[1].Title)
		assert.Equal(t, "Later", output.Recommendations[2].Title)
	})

	t.Run("fallback set is generic", func(t *testing.T) {
		fb := domain.FallbackRecommendations(0)
		ports := newTestPorts()
		ports.Recommendations = &mockRecommendationService{set: &fb}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRecommendations(ctx, nil, MatchInput{MatchID: "inv-1"})

		require.NoError(t, err)
		assert.True(t, output.Generic)
		assert.Equal(t, float64(domain.DefaultPrecision), output.Precision)
	})

	t.Run("unavailable without service", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		_, _, err = server.handleRecommendations(ctx, nil, MatchInput{MatchID: "inv-1"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestServer_bookmarks(t *testing.T) {
	ctx := context.Background()
	bookmarks := &mockBookmarkService{}
	ports := newTestPorts()
	ports.Bookmarks = bookmarks
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, listed, err := server.handleListBookmarks(ctx, nil, BookmarksInput{})
	require.NoError(t, err)
	assert.NotNil(t, listed.MatchIDs)
	assert.Empty(t, listed.MatchIDs)

	_, toggled, err := server.handleToggleBookmark(ctx, nil, MatchInput{MatchID: "inv-1"})
	require.NoError(t, err)
	assert.True(t, toggled.Bookmarked)

	_, listed, err = server.handleListBookmarks(ctx, nil, BookmarksInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"inv-1"}, listed.MatchIDs)

	_, toggled, err = server.handleToggleBookmark(ctx, nil, MatchInput{MatchID: "inv-1"})
	require.NoError(t, err)
	assert.False(t, toggled.Bookmarked)
}

func TestServer_bookmarksLoadFailure(t *testing.T) {
	ports := newTestPorts()
	ports.Bookmarks = &mockBookmarkService{loadErr: domain.ErrUnauthorized}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleToggleBookmark(context.Background(), nil, MatchInput{MatchID: "inv-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
