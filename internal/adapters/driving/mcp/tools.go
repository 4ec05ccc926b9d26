package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_matches tool.
type SearchInput struct {
	Keyword      string `json:"keyword,omitempty" jsonschema:"matches company name, email or description"`
	Industry     string `json:"industry,omitempty" jsonschema:"filter by industry"`
	FundingStage string `json:"funding_stage,omitempty" jsonschema:"filter by funding stage"`
	Location     string `json:"location,omitempty" jsonschema:"filter by location"`
	SortBy       string `json:"sort_by,omitempty" jsonschema:"createdAt, matchScore, companyName, location, industry, fundingStage or ticketSize"`
	SortOrder    string `json:"sort_order,omitempty" jsonschema:"asc or desc"`
	Page         int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	Limit        int    `json:"limit,omitempty" jsonschema:"page size: 10, 20 or 50 (default 10)"`
}

// SearchOutput is the output schema for the search_matches tool.
type SearchOutput struct {
	Role    string        `json:"role"`
	Matches []MatchOutput `json:"matches"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
	HasNext bool          `json:"has_next"`
	HasPrev bool          `json:"has_prev"`
}

// MatchOutput is one match in a search page.
type MatchOutput struct {
	ID          string   `json:"id"`
	CompanyName string   `json:"company_name"`
	Score       float64  `json:"score"`
	Industries  []string `json:"industries,omitempty"`
	Stages      []string `json:"stages,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	IsNew       bool     `json:"is_new,omitempty"`
	Bookmarked  bool     `json:"bookmarked,omitempty"`
}

// FilterOptionsInput is the (empty) input for the filter_options tool.
type FilterOptionsInput struct{}

// FilterOptionsOutput mirrors domain.FilterOptions.
type FilterOptionsOutput struct {
	Industries        []string `json:"industries"`
	FundingStages     []string `json:"funding_stages"`
	EmployeeOptions   []string `json:"employee_options"`
	TicketSizes       []string `json:"ticket_sizes"`
	InvestmentRegions []string `json:"investment_regions"`
	RevenueRanges     []string `json:"revenue_ranges"`
}

// MatchInput names a single match.
type MatchInput struct {
	MatchID string `json:"match_id" jsonschema:"the id of a match returned by search_matches"`
}

// CompatibilityOutput is the output schema for get_compatibility.
type CompatibilityOutput struct {
	MatchID   string             `json:"match_id"`
	State     string             `json:"state"`
	Overall   float64            `json:"overall,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
	Insights  []string           `json:"insights,omitempty"`
	Estimated bool               `json:"estimated,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// RecommendationsOutput is the output schema for get_recommendations.
type RecommendationsOutput struct {
	MatchID         string                 `json:"match_id"`
	Precision       float64                `json:"precision"`
	Generic         bool                   `json:"generic,omitempty"`
	Recommendations []RecommendationOutput `json:"recommendations"`
}

// RecommendationOutput is one recommendation.
type RecommendationOutput struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Details    string  `json:"details,omitempty"`
	Category   string  `json:"category"`
	Priority   string  `json:"priority"`
	Confidence float64 `json:"confidence"`
}

// BookmarksInput is the (empty) input for list_bookmarks.
type BookmarksInput struct{}

// BookmarksOutput lists bookmarked match ids.
type BookmarksOutput struct {
	MatchIDs []string `json:"match_ids"`
}

// ToggleOutput reports the bookmark state after a toggle.
type ToggleOutput struct {
	MatchID    string `json:"match_id"`
	Bookmarked bool   `json:"bookmarked"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_matches",
		Description: "Search investors (for a startup account) or startups (for an investor account) with filters, sorting and paging",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_options",
		Description: "List the facet values accepted by the search filters",
	}, s.handleFilterOptions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_compatibility",
		Description: "Get the compatibility breakdown between the logged-in user and a match",
	}, s.handleCompatibility)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_recommendations",
		Description: "Get prioritised recommendations for approaching a match",
	}, s.handleRecommendations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_bookmarks",
		Description: "List the ids of bookmarked matches",
	}, s.handleListBookmarks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_bookmark",
		Description: "Bookmark a match, or remove the bookmark if it is already set",
	}, s.handleToggleBookmark)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	sess, err := s.ports.Session.Current(ctx)
	if err != nil {
		return nil, SearchOutput{}, userError(err)
	}
	role := sess.Role().Counterpart()

	result, err := s.ports.Search.Search(ctx, role, searchOptions(input))
	if err != nil {
		return nil, SearchOutput{}, userError(err)
	}

	if s.ports.Bookmarks != nil {
		_ = s.ports.Bookmarks.Load(ctx)
	}

	p := result.Pagination
	output := SearchOutput{
		Role:    role.String(),
		Matches: make([]MatchOutput, len(result.Items)),
		Total:   p.Total,
		Page:    p.Page,
		Pages:   p.Pages,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	}
	for i, m := range result.Items {
		output.Matches[i] = MatchOutput{
			ID:          m.ID,
			CompanyName: m.CompanyName,
			Score:       m.MatchScore,
			Industries:  m.Industries(),
			Stages:      m.Stages(),
			Location:    m.Location,
			Description: m.Description,
			IsNew:       m.IsNew,
			Bookmarked:  s.ports.Bookmarks != nil && s.ports.Bookmarks.IsBookmarked(m.ID),
		}
	}
	return nil, output, nil
}

// searchOptions overlays the tool input on the server defaults.
func searchOptions(input SearchInput) domain.SearchOptions {
	opts := domain.DefaultSearchOptions()
	if input.Page > 0 {
		opts.Page = input.Page
	}
	if input.Limit > 0 {
		opts.Limit = input.Limit
	}
	if input.SortBy != "" {
		opts.SortBy = domain.SortField(input.SortBy)
	}
	if input.SortOrder != "" {
		opts.SortOrder = domain.SortOrder(strings.ToLower(input.SortOrder))
	}

	var f domain.Filters
	f.Set(domain.FilterIndustry, input.Industry)
	f.Set(domain.FilterFundingStage, input.FundingStage)
	f.Set(domain.FilterLocation, input.Location)
	f.Set(domain.FilterKeywords, input.Keyword)
	return opts.WithFilters(f)
}

func (s *Server) handleFilterOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ FilterOptionsInput,
) (*mcp.CallToolResult, FilterOptionsOutput, error) {
	opts := s.ports.Search.FilterOptions(ctx).Normalize()
	return nil, FilterOptionsOutput{
		Industries:        opts.Industries,
		FundingStages:     opts.FundingStages,
		EmployeeOptions:   opts.EmployeeOptions,
		TicketSizes:       opts.TicketSizes,
		InvestmentRegions: opts.InvestmentRegions,
		RevenueRanges:     opts.RevenueRanges,
	}, nil
}

func (s *Server) handleCompatibility(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, CompatibilityOutput, error) {
	if s.ports.Compatibility == nil {
		return nil, CompatibilityOutput{}, ErrUnavailable
	}
	if strings.TrimSpace(input.MatchID) == "" {
		return nil, CompatibilityOutput{}, fmt.Errorf("%w: match_id is required", domain.ErrInvalidInput)
	}

	view, err := s.ports.Compatibility.Select(ctx, input.MatchID)
	if err != nil {
		return nil, CompatibilityOutput{}, userError(err)
	}
	return nil, compatibilityOutput(view), nil
}

func compatibilityOutput(view domain.CompatibilityView) CompatibilityOutput {
	out := CompatibilityOutput{
		MatchID: view.MatchID,
		State:   view.State.String(),
		Message: view.Message,
	}
	if view.Data == nil {
		return out
	}
	out.Overall = view.Data.OverallScore
	out.Insights = view.Data.Insights
	out.Estimated = view.Data.Fallback
	out.Breakdown = make(map[string]float64, 5)
	for _, e := range view.Data.Breakdown.Entries() {
		out.Breakdown[e.Label] = e.Score
	}
	return out
}

func (s *Server) handleRecommendations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, RecommendationsOutput, error) {
	if s.ports.Recommendations == nil {
		return nil, RecommendationsOutput{}, ErrUnavailable
	}
	if strings.TrimSpace(input.MatchID) == "" {
		return nil, RecommendationsOutput{}, fmt.Errorf("%w: match_id is required", domain.ErrInvalidInput)
	}

	set, err := s.ports.Recommendations.ForMatch(ctx, input.MatchID)
	if err != nil {
		return nil, RecommendationsOutput{}, userError(err)
	}

	recs := make([]domain.Recommendation, len(set.Recommendations))
	copy(recs, set.Recommendations)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})

	out := RecommendationsOutput{
		MatchID:         input.MatchID,
		Precision:       set.Precision,
		Generic:         set.Fallback,
		Recommendations: make([]RecommendationOutput, len(recs)),
	}
	for i, r := range recs {
		out.Recommendations[i] = RecommendationOutput{
			Title:      r.Title,
			Summary:    r.Summary,
			Details:    r.Details,
			Category:   string(r.Category),
			Priority:   string(r.Priority),
			Confidence: r.Confidence,
		}
	}
	return nil, out, nil
}

func (s *Server) handleListBookmarks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ BookmarksInput,
) (*mcp.CallToolResult, BookmarksOutput, error) {
	if s.ports.Bookmarks == nil {
		return nil, BookmarksOutput{}, ErrUnavailable
	}
	if err := s.ports.Bookmarks.Load(ctx); err != nil {
		return nil, BookmarksOutput{}, userError(err)
	}
	ids := s.ports.Bookmarks.List()
	if ids == nil {
		ids = []string{}
	}
	return nil, BookmarksOutput{MatchIDs: ids}, nil
}

func (s *Server) handleToggleBookmark(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, ToggleOutput, error) {
	if s.ports.Bookmarks == nil {
		return nil, ToggleOutput{}, ErrUnavailable
	}
	if err := s.ports.Bookmarks.Load(ctx); err != nil {
		return nil, ToggleOutput{}, userError(err)
	}
	on, err := s.ports.Bookmarks.Toggle(ctx, input.MatchID)
	if err != nil {
		return nil, ToggleOutput{}, userError(err)
	}
	return nil, ToggleOutput{MatchID: input.MatchID, Bookmarked: on}, nil
}

// userError prefixes err with the message a user would see for it.
func userError(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
}
