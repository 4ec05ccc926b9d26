package file

import "github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"

// KeyToken is the config key holding the session token.
const KeyToken = "auth.token"

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore keeps the session token in a ConfigStore.
type TokenStore struct {
	config driven.ConfigStore
}

// NewTokenStore creates a token store over config.
func NewTokenStore(config driven.ConfigStore) *TokenStore {
	return &TokenStore{config: config}
}

// Token returns the stored token.
func (t *TokenStore) Token() string {
	return t.config.GetString(KeyToken)
}

// SetToken stores a token.
func (t *TokenStore) SetToken(token string) error {
	return t.config.Set(KeyToken, token)
}

// ClearToken removes the token.
func (t *TokenStore) ClearToken() error {
	return t.config.Delete(KeyToken)
}
