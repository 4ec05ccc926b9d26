package domain

import "time"

// Match is a candidate counterpart returned by search.
// Matches are owned by the server; the client holds a read-only copy of
// the current page which is replaced wholesale on every fetch.
type Match struct {
	// ID is the counterpart's user identifier.
	ID string `json:"id"`

	// CompanyName is the display name.
	CompanyName string `json:"companyName"`

	// Email is the contact address, used by keyword search.
	Email string `json:"email,omitempty"`

	// Description is the free-text pitch or investment thesis.
	Description string `json:"description,omitempty"`

	// Industry is set for startups.
	Industry string `json:"industry,omitempty"`

	// IndustriesOfInterest is set for investors.
	IndustriesOfInterest []string `json:"industriesOfInterest,omitempty"`

	// FundingStage is set for startups.
	FundingStage string `json:"fundingStage,omitempty"`

	// PreferredStages is set for investors.
	PreferredStages []string `json:"preferredStages,omitempty"`

	Location      string `json:"location,omitempty"`
	TicketSize    string `json:"ticketSize,omitempty"`
	EmployeeCount string `json:"employeeCount,omitempty"`

	// MatchScore is the server-computed score in [0, 100].
	MatchScore float64 `json:"matchScore"`

	// MatchCategories holds optional per-category sub-scores.
	MatchCategories map[string]float64 `json:"matchCategories,omitempty"`

	// IsNew marks counterparts that joined recently.
	IsNew bool `json:"isNew,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Industries returns the startup's industry or the investor's industries
// of interest.
func (m Match) Industries() []string {
	if m.Industry != "" {
		return []string{m.Industry}
	}
	return m.IndustriesOfInterest
}

// Stages returns the startup's funding stage or the investor's preferred
// stages.
func (m Match) Stages() []string {
	if m.FundingStage != "" {
		return []string{m.FundingStage}
	}
	return m.PreferredStages
}

// ScoreBand buckets the match score for display.
func (m Match) ScoreBand() string {
	switch {
	case m.MatchScore >= 80:
		return "high"
	case m.MatchScore >= 60:
		return "medium"
	default:
		return "low"
	}
}
