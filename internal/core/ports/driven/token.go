package driven

import "github.com/karmicdd/karmicdd-cli/internal/core/domain"

// TokenStore persists the session token.
type TokenStore interface {
	// Token returns the stored token or an empty string.
	Token() string

	// SetToken stores a token.
	SetToken(token string) error

	// ClearToken removes the stored token.
	ClearToken() error
}

// TokenDecoder reads identity claims from a session token without
// contacting the API.
type TokenDecoder interface {
	// Decode returns the profile encoded in the token.
	Decode(token string) (*domain.Profile, error)
}
