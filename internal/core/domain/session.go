package domain

// Profile identifies the logged-in user.
type Profile struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	Name        string `json:"name,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// DisplayName returns the best available name for the user.
func (p Profile) DisplayName() string {
	switch {
	case p.CompanyName != "":
		return p.CompanyName
	case p.Name != "":
		return p.Name
	default:
		return p.Email
	}
}

// Session is an authenticated user.
// The profile role is the only source of truth for which side the user
// is on.
type Session struct {
	Token   string
	Profile Profile

	// Offline is true when the profile came from token claims because the
	// profile endpoint could not be reached.
	Offline bool
}

// Role returns the session's role.
func (s *Session) Role() Role {
	if s == nil {
		return ""
	}
	return s.Profile.Role
}

// UserID returns the session's user id.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.Profile.UserID
}

// Keys persisted in the per-user key-value namespace.
const (
	KeyBookmarks          = "bookmarkedMatches"
	KeySelectedRole       = "selectedRole"
	KeyPendingRedirect    = "pendingRedirect"
	KeySelectedEntityID   = "selectedEntityId"
	KeySelectedEntityType = "selectedEntityType"
)

// SessionKeys lists the selection keys cleared on logout.
// Bookmarks are not included; they survive logout in the user's namespace.
func SessionKeys() []string {
	return []string{KeySelectedRole, KeyPendingRedirect, KeySelectedEntityID, KeySelectedEntityType}
}
