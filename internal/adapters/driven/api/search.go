package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// matchDTO is a profile row as returned by the search endpoints.
type matchDTO struct {
	ObjectID             string             `json:"_id"`
	ID                   string             `json:"id"`
	UserID               string             `json:"userId"`
	CompanyName          string             `json:"companyName"`
	Email                string             `json:"email"`
	Description          string             `json:"description"`
	Pitch                string             `json:"pitch"`
	Industry             string             `json:"industry"`
	IndustriesOfInterest []string           `json:"industriesOfInterest"`
	FundingStage         string             `json:"fundingStage"`
	PreferredStages      []string           `json:"preferredStages"`
	Location             string             `json:"location"`
	TicketSize           string             `json:"ticketSize"`
	EmployeeCount        string             `json:"employeeCount"`
	MatchScore           float64            `json:"matchScore"`
	MatchCategories      map[string]float64 `json:"matchCategories"`
	IsNew                bool               `json:"isNew"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// toDomain converts the row. The user id identifies a counterpart for the
// compatibility endpoints, so it wins over document ids.
func (d matchDTO) toDomain() domain.Match {
	id := d.UserID
	if id == "" {
		id = d.ID
	}
	if id == "" {
		id = d.ObjectID
	}
	desc := d.Description
	if desc == "" {
		desc = d.Pitch
	}
	return domain.Match{
		ID:                   id,
		CompanyName:          d.CompanyName,
		Email:                d.Email,
		Description:          desc,
		Industry:             d.Industry,
		IndustriesOfInterest: d.IndustriesOfInterest,
		FundingStage:         d.FundingStage,
		PreferredStages:      d.PreferredStages,
		Location:             d.Location,
		TicketSize:           d.TicketSize,
		EmployeeCount:        d.EmployeeCount,
		MatchScore:           d.MatchScore,
		MatchCategories:      d.MatchCategories,
		IsNew:                d.IsNew,
		CreatedAt:            d.CreatedAt,
	}
}

// searchResponse covers both the startups and investors endpoints.
type searchResponse struct {
	Startups   []matchDTO        `json:"startups"`
	Investors  []matchDTO        `json:"investors"`
	Pagination domain.Pagination `json:"pagination"`
	Filters    struct {
		Applied   map[string]json.RawMessage `json:"applied"`
		Available map[string]json.RawMessage `json:"available"`
	} `json:"filters"`
}

// Search returns one page of counterparts of the given role.
func (c *Client) Search(ctx context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	path := "/search/" + role.Plural()
	var resp searchResponse
	if err := c.get(ctx, "search_"+role.Plural(), path, QueryParams(opts), &resp); err != nil {
		return nil, err
	}

	rows := resp.Startups
	if role == domain.RoleInvestor {
		rows = resp.Investors
	}
	items := make([]domain.Match, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toDomain())
	}

	p := resp.Pagination
	if p.Limit == 0 {
		p.Limit = opts.Limit
	}
	if p.Page == 0 {
		p.Page = opts.Page
	}

	return &domain.SearchResult{
		Items:            items,
		Pagination:       p.Normalize(),
		AppliedFilters:   decodeFacets(resp.Filters.Applied),
		AvailableFilters: decodeFacets(resp.Filters.Available),
	}, nil
}

// FilterOptions returns the facet values for the filter UI.
func (c *Client) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	var opts domain.FilterOptions
	if err := c.get(ctx, "search_options", "/search/options", nil, &opts); err != nil {
		return nil, err
	}
	normalized := opts.Normalize()
	return &normalized, nil
}

// QueryParams serialises search options. Zero values and empty filters are
// omitted so the server applies its own defaults.
func QueryParams(opts domain.SearchOptions) url.Values {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.SortBy != "" {
		q.Set("sortBy", opts.SortBy.String())
	}
	if opts.SortOrder != "" {
		q.Set("sortOrder", opts.SortOrder.String())
	}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("industry", opts.Industry)
	set("fundingStage", opts.FundingStage)
	set("location", opts.Location)
	set("keywords", opts.Keywords)
	return q
}

// decodeFacets accepts values sent either as a string or a string list.
func decodeFacets(raw map[string]json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		var list []string
		if json.Unmarshal(v, &list) == nil {
			out[k] = list
			continue
		}
		var single string
		if json.Unmarshal(v, &single) == nil && single != "" {
			out[k] = []string{single}
		}
	}
	return out
}
