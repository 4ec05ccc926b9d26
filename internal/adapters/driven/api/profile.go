package api

import (
	"context"
	"fmt"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// UserProfile returns the profile of the token's owner.
func (c *Client) UserProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "profile_user_type", "/profile/user-type", nil, &p); err != nil {
		return nil, err
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("/profile/user-type: response has no userId")
	}
	return &p, nil
}
