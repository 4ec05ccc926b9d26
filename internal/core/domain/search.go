package domain

// Server-side defaults applied when a query omits a parameter.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageSizes lists the page sizes a client may request.
var PageSizes = []int{10, 20, 50}

// IsValidPageSize returns true if n is one of PageSizes.
func IsValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// SortField names a field the search endpoints can sort by.
type SortField string

// Available sort fields.
const (
	SortCreatedAt    SortField = "createdAt"
	SortMatchScore   SortField = "matchScore"
	SortCompanyName  SortField = "companyName"
	SortLocation     SortField = "location"
	SortIndustry     SortField = "industry"
	SortFundingStage SortField = "fundingStage"
	SortTicketSize   SortField = "ticketSize"
)

// SortFields returns every sort field in display order.
func SortFields() []SortField {
	return []SortField{
		SortMatchScore,
		SortCreatedAt,
		SortCompanyName,
		SortLocation,
		SortIndustry,
		SortFundingStage,
		SortTicketSize,
	}
}

// IsValid returns true if the sort field is recognised.
func (f SortField) IsValid() bool {
	for _, s := range SortFields() {
		if s == f {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (f SortField) String() string {
	return string(f)
}

// Description returns a human-readable label.
func (f SortField) Description() string {
	switch f {
	case SortCreatedAt:
		return "Date Joined"
	case SortMatchScore:
		return "Match Score"
	case SortCompanyName:
		return "Company Name"
	case SortLocation:
		return "Location"
	case SortIndustry:
		return "Industry"
	case SortFundingStage:
		return "Funding Stage"
	case SortTicketSize:
		return "Ticket Size"
	default:
		return unknownDescription
	}
}

// Next returns the following sort field, wrapping around.
func (f SortField) Next() SortField {
	fields := SortFields()
	for i, s := range fields {
		if s == f {
			return fields[(i+1)%len(fields)]
		}
	}
	return fields[0]
}

// SortOrder is the sort direction.
type SortOrder string

// Available sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid returns true if the order is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// String returns the string representation.
func (o SortOrder) String() string {
	return string(o)
}

// Arrow returns a compact indicator for the direction.
func (o SortOrder) Arrow() string {
	if o == SortAsc {
		return "↑"
	}
	return "↓"
}

// SearchOptions is the query sent to the search endpoints.
// Empty filter fields are omitted from the request.
type SearchOptions struct {
	// Page is 1-based.
	Page int `json:"page" validate:"min=1"`

	// Limit must be one of PageSizes.
	Limit int `json:"limit" validate:"pagesize"`

	SortBy    SortField `json:"sortBy" validate:"sortfield"`
	SortOrder SortOrder `json:"sortOrder" validate:"oneof=asc desc"`

	Industry     string `json:"industry,omitempty" validate:"max=100"`
	FundingStage string `json:"fundingStage,omitempty" validate:"max=100"`
	Location     string `json:"location,omitempty" validate:"max=100"`
	Keywords     string `json:"keywords,omitempty" validate:"max=200"`
}

// DefaultSearchOptions returns the options the server assumes when a
// parameter is absent.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Page:      DefaultPage,
		Limit:     DefaultPageSize,
		SortBy:    SortCreatedAt,
		SortOrder: SortDesc,
	}
}

// WithFilters returns a copy of the options carrying the given filters.
func (o SearchOptions) WithFilters(f Filters) SearchOptions {
	o.Industry = f.Industry
	o.FundingStage = f.FundingStage
	o.Location = f.Location
	o.Keywords = f.Keywords
	return o
}

// Filters returns the filter part of the options.
func (o SearchOptions) Filters() Filters {
	return Filters{
		Industry:     o.Industry,
		FundingStage: o.FundingStage,
		Location:     o.Location,
		Keywords:     o.Keywords,
	}
}

// SearchResult is one page of matches returned by the search endpoints.
type SearchResult struct {
	// Items are the matches on this page.
	Items []Match

	// Pagination describes where this page sits in the full result set.
	Pagination Pagination

	// AppliedFilters echoes the filters the server used.
	AppliedFilters map[string][]string

	// AvailableFilters lists facet values present in the result set.
	AvailableFilters map[string][]string
}
