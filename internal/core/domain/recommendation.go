package domain

// RecommendationCategory groups recommendations by theme.
type RecommendationCategory string

// Recommendation categories.
const (
	CategoryStrategic     RecommendationCategory = "strategic"
	CategoryOperational   RecommendationCategory = "operational"
	CategoryFinancial     RecommendationCategory = "financial"
	CategoryCommunication RecommendationCategory = "communication"
	CategoryGrowth        RecommendationCategory = "growth"
)

// Priority ranks a recommendation.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is a piece of advice for a startup/investor pair.
type Recommendation struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Summary    string                 `json:"summary"`
	Details    string                 `json:"details"`
	Category   RecommendationCategory `json:"category"`
	Priority   Priority               `json:"priority"`
	Confidence float64                `json:"confidence"`
}

// RecommendationSet is the recommendations for one pair.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	Precision       float64          `json:"precision"`

	// Fallback is true when the set was synthesised locally.
	Fallback bool `json:"fallback,omitempty"`
}

// BatchRecommendation is one entry of a batch response.
type BatchRecommendation struct {
	MatchID         string             `json:"matchId"`
	Recommendations *RecommendationSet `json:"recommendations,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// DefaultPrecision is used when no score is available to derive one.
const DefaultPrecision = 90

// FallbackRecommendations returns the canned recommendations used when the
// recommendation endpoint is unavailable.
func FallbackRecommendations(precision float64) RecommendationSet {
	if precision == 0 {
		precision = DefaultPrecision
	}
	return RecommendationSet{
		Recommendations: []Recommendation{
			{
				ID:         "alignment",
				Title:      "Strategic Alignment",
				Summary:    "Strong alignment in industry focus areas",
				Details:    "The startup's focus aligns well with this investor's portfolio strategy. Consider highlighting this alignment in your communications.",
				Category:   CategoryStrategic,
				Priority:   PriorityHigh,
				Confidence: 92,
			},
			{
				ID:         "growth",
				Title:      "Growth Trajectory",
				Summary:    "Growth trajectory matches investor's portfolio preferences",
				Details:    "Your current growth rate and scaling strategy closely matches what this investor typically looks for in companies at your stage.",
				Category:   CategoryGrowth,
				Priority:   PriorityMedium,
				Confidence: 85,
			},
			{
				ID:         "team",
				Title:      "Team Compatibility",
				Summary:    "Team composition indicates strong execution capability",
				Details:    "Your founding team's expertise complements this investor's operational approach. They typically provide hands-off support for teams with proven domain expertise.",
				Category:   CategoryOperational,
				Priority:   PriorityMedium,
				Confidence: 88,
			},
		},
		Precision: precision,
		Fallback:  true,
	}
}
