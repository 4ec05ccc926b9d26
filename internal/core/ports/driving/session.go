package driving

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// SessionService manages the logged-in user.
type SessionService interface {
	// Login stores a token and resolves its profile.
	Login(ctx context.Context, token string) (*domain.Session, error)

	// Logout clears the token and the user's session selections.
	Logout(ctx context.Context) error

	// Current resolves the active session.
	// Returns domain.ErrNoSession when no token is stored.
	Current(ctx context.Context) (*domain.Session, error)

	// Remember stores a session selection such as selectedEntityId.
	Remember(ctx context.Context, key, value string) error

	// Recall reads a session selection.
	Recall(ctx context.Context, key string) (string, bool, error)
}

// DashboardService performs the initial load of the matches screen.
type DashboardService interface {
	// Load resolves the session and loads facets, bookmarks and the first
	// page of matches.
	Load(ctx context.Context) (*domain.Dashboard, error)
}
