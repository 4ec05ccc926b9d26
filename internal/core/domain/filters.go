package domain

import "strings"

// FilterName identifies one of the search filters.
type FilterName string

// Available filters.
const (
	FilterIndustry     FilterName = "industry"
	FilterFundingStage FilterName = "fundingStage"
	FilterLocation     FilterName = "location"
	FilterKeywords     FilterName = "keywords"
)

// FilterNames returns every filter in display order.
func FilterNames() []FilterName {
	return []FilterName{FilterIndustry, FilterFundingStage, FilterLocation, FilterKeywords}
}

// IsValid returns true if the filter name is recognised.
func (n FilterName) IsValid() bool {
	switch n {
	case FilterIndustry, FilterFundingStage, FilterLocation, FilterKeywords:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (n FilterName) String() string {
	return string(n)
}

// Description returns a human-readable label.
func (n FilterName) Description() string {
	switch n {
	case FilterIndustry:
		return "Industry"
	case FilterFundingStage:
		return "Funding Stage"
	case FilterLocation:
		return "Location"
	case FilterKeywords:
		return "Keywords"
	default:
		return unknownDescription
	}
}

// Filters holds the current filter values. The zero value has no filters.
type Filters struct {
	Industry     string
	FundingStage string
	Location     string
	Keywords     string
}

// Set updates a single filter. Values are trimmed.
// Returns false if the name is not recognised.
func (f *Filters) Set(name FilterName, value string) bool {
	value = strings.TrimSpace(value)
	switch name {
	case FilterIndustry:
		f.Industry = value
	case FilterFundingStage:
		f.FundingStage = value
	case FilterLocation:
		f.Location = value
	case FilterKeywords:
		f.Keywords = value
	default:
		return false
	}
	return true
}

// Get returns the value of a single filter.
func (f Filters) Get(name FilterName) string {
	switch name {
	case FilterIndustry:
		return f.Industry
	case FilterFundingStage:
		return f.FundingStage
	case FilterLocation:
		return f.Location
	case FilterKeywords:
		return f.Keywords
	default:
		return ""
	}
}

// IsEmpty returns true if no filter is set.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Clear resets every filter.
func (f *Filters) Clear() {
	*f = Filters{}
}

// FilterOptions are the facet values offered by the filter UI.
type FilterOptions struct {
	Industries         []string `json:"industries"`
	FundingStages      []string `json:"fundingStages"`
	EmployeeOptions    []string `json:"employeeOptions"`
	TicketSizes        []string `json:"ticketSizes"`
	InvestmentCriteria []string `json:"investmentCriteria"`
	InvestmentRegions  []string `json:"investmentRegions"`
	RevenueRanges      []string `json:"revenueRanges"`
}

// EmptyFilterOptions returns options with every list present and empty.
func EmptyFilterOptions() FilterOptions {
	return FilterOptions{
		Industries:         []string{},
		FundingStages:      []string{},
		EmployeeOptions:    []string{},
		TicketSizes:        []string{},
		InvestmentCriteria: []string{},
		InvestmentRegions:  []string{},
		RevenueRanges:      []string{},
	}
}

// Normalize replaces nil lists with empty ones.
func (o FilterOptions) Normalize() FilterOptions {
	fill := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return FilterOptions{
		Industries:         fill(o.Industries),
		FundingStages:      fill(o.FundingStages),
		EmployeeOptions:    fill(o.EmployeeOptions),
		TicketSizes:        fill(o.TicketSizes),
		InvestmentCriteria: fill(o.InvestmentCriteria),
		InvestmentRegions:  fill(o.InvestmentRegions),
		RevenueRanges:      fill(o.RevenueRanges),
	}
}

// ValuesFor returns the facet values backing a filter.
// Keywords and location are free text and have no facet list.
func (o FilterOptions) ValuesFor(name FilterName) []string {
	switch name {
	case FilterIndustry:
		return o.Industries
	case FilterFundingStage:
		return o.FundingStages
	default:
		return nil
	}
}
