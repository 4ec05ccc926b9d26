package domain

import "time"

// Breakdown holds the named compatibility sub-scores.
type Breakdown struct {
	MissionAlignment      float64 `json:"missionAlignment"`
	InvestmentPhilosophy  float64 `json:"investmentPhilosophy"`
	SectorFocus           float64 `json:"sectorFocus"`
	FundingStageAlignment float64 `json:"fundingStageAlignment"`
	ValueAddMatch         float64 `json:"valueAddMatch"`
}

// IsZero returns true if no sub-score is set.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// BreakdownEntry is a labelled sub-score for display.
type BreakdownEntry struct {
	Label string
	Score float64
}

// Entries returns the sub-scores in display order.
func (b Breakdown) Entries() []BreakdownEntry {
	return []BreakdownEntry{
		{Label: "Mission Alignment", Score: b.MissionAlignment},
		{Label: "Investment Philosophy", Score: b.InvestmentPhilosophy},
		{Label: "Sector Focus", Score: b.SectorFocus},
		{Label: "Funding Stage Alignment", Score: b.FundingStageAlignment},
		{Label: "Value-Add Match", Score: b.ValueAddMatch},
	}
}

// CompatibilityData is the server-computed compatibility of a
// startup/investor pair.
type CompatibilityData struct {
	Breakdown    Breakdown `json:"breakdown"`
	OverallScore float64   `json:"overallScore"`
	Insights     []string  `json:"insights"`
	IsOldData    bool      `json:"isOldData,omitempty"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`

	// Fallback is true when the data is the fixed placeholder rather than
	// a server response.
	Fallback bool `json:"fallback,omitempty"`
}

// FallbackCompatibility returns the placeholder shown when the
// compatibility endpoint fails for any reason other than missing data.
func FallbackCompatibility() CompatibilityData {
	return CompatibilityData{
		Breakdown: Breakdown{
			MissionAlignment:      75,
			InvestmentPhilosophy:  82,
			SectorFocus:           90,
			FundingStageAlignment: 65,
			ValueAddMatch:         78,
		},
		OverallScore: 78,
		Insights: []string{
			"Strong alignment in sector focus and vision",
			"Investment philosophy matches your growth plans",
			"Consider discussing funding timeline expectations",
			"Potential for strategic mentorship beyond funding",
		},
		Fallback: true,
	}
}

// WithDefaults fills fields the server left empty from the placeholder.
// Each of breakdown, overall score and insights is filled independently.
func (c CompatibilityData) WithDefaults() CompatibilityData {
	fb := FallbackCompatibility()
	if c.Breakdown.IsZero() {
		c.Breakdown = fb.Breakdown
	}
	if c.OverallScore == 0 {
		c.OverallScore = fb.OverallScore
	}
	if c.Insights == nil {
		c.Insights = fb.Insights
	}
	return c
}

// PairFor orders a (self, match) pair as (startupID, investorID) according
// to the role of self.
func PairFor(selfRole Role, selfID, matchID string) (startupID, investorID string) {
	if selfRole == RoleStartup {
		return selfID, matchID
	}
	return matchID, selfID
}

// CompatState is the state of the compatibility panel.
type CompatState string

// Compatibility panel states.
const (
	// CompatNone means no match is selected.
	CompatNone CompatState = "none"

	// CompatLoading means a fetch is in flight for the selected match.
	CompatLoading CompatState = "loading"

	// CompatShown means server data is displayed.
	CompatShown CompatState = "shown"

	// CompatFallback means the fetch failed and placeholder data is shown.
	CompatFallback CompatState = "fallback"

	// CompatQuestionnaire means no data exists yet and the user is asked to
	// complete the questionnaire.
	CompatQuestionnaire CompatState = "questionnaire"
)

// String returns the string representation.
func (s CompatState) String() string {
	return string(s)
}

// IsTerminal returns true once a fetch has resolved.
func (s CompatState) IsTerminal() bool {
	return s == CompatShown || s == CompatFallback || s == CompatQuestionnaire
}
