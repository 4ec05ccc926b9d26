package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// Compatibility returns the breakdown for an ordered startup/investor pair.
func (c *Client) Compatibility(ctx context.Context, startupID, investorID string) (*domain.CompatibilityData, error) {
	if startupID == "" || investorID == "" {
		return nil, fmt.Errorf("%w: startup and investor ids are required", domain.ErrInvalidInput)
	}

	path := fmt.Sprintf("/score/compatibility/%s/%s", url.PathEscape(startupID), url.PathEscape(investorID))
	var data domain.CompatibilityData
	if err := c.get(ctx, "compatibility", path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
