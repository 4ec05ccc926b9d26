package api

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
)

// Ensure ClaimsDecoder implements the interface.
var _ driven.TokenDecoder = (*ClaimsDecoder)(nil)

// sessionClaims are the claims the backend signs into session tokens.
type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ClaimsDecoder reads identity claims from a session token without
// verifying its signature. The server still verifies every request; the
// claims are only used to label the session when the profile endpoint is
// unreachable.
type ClaimsDecoder struct {
	parser *jwt.Parser
}

// NewClaimsDecoder creates a decoder.
func NewClaimsDecoder() *ClaimsDecoder {
	return &ClaimsDecoder{parser: jwt.NewParser()}
}

// Decode returns the profile encoded in the token.
func (d *ClaimsDecoder) Decode(token string) (*domain.Profile, error) {
	var claims sessionClaims
	if _, _, err := d.parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: parse token: %v", domain.ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token has no userId claim", domain.ErrUnauthorized)
	}

	role, _ := domain.ParseRole(claims.Role)
	return &domain.Profile{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
