package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// MatchRecommendations returns recommendations for an ordered pair.
func (c *Client) MatchRecommendations(ctx context.Context, startupID, investorID string) (*domain.RecommendationSet, error) {
	if startupID == "" || investorID == "" {
		return nil, fmt.Errorf("%w: startup and investor ids are required", domain.ErrInvalidInput)
	}

	path := fmt.Sprintf("/recommendations/match/%s/%s", url.PathEscape(startupID), url.PathEscape(investorID))
	var set domain.RecommendationSet
	if err := c.get(ctx, "recommendations_match", path, nil, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// batchRequest is the body of POST /recommendations/batch.
type batchRequest struct {
	MatchIDs []string `json:"matchIds"`
}

// batchResponse is the response of POST /recommendations/batch.
type batchResponse struct {
	Results []domain.BatchRecommendation `json:"results"`
}

// BatchRecommendations returns recommendations for several matches.
func (c *Client) BatchRecommendations(ctx context.Context, matchIDs []string) ([]domain.BatchRecommendation, error) {
	var resp batchResponse
	if err := c.post(ctx, "recommendations_batch", "/recommendations/batch", batchRequest{MatchIDs: matchIDs}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
