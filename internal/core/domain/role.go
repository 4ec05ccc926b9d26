package domain

// Role identifies which side of the marketplace a user is on.
type Role string

// Available roles.
const (
	RoleStartup  Role = "startup"
	RoleInvestor Role = "investor"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleStartup || r == RoleInvestor
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Counterpart returns the role a user of this role is matched against.
// An invalid role has no counterpart.
func (r Role) Counterpart() Role {
	switch r {
	case RoleStartup:
		return RoleInvestor
	case RoleInvestor:
		return RoleStartup
	default:
		return ""
	}
}

// Plural returns the endpoint family name for the role.
func (r Role) Plural() string {
	switch r {
	case RoleStartup:
		return "startups"
	case RoleInvestor:
		return "investors"
	default:
		return ""
	}
}

// Description returns a human-readable description of the role.
func (r Role) Description() string {
	switch r {
	case RoleStartup:
		return "Startup"
	case RoleInvestor:
		return "Investor"
	default:
		return unknownDescription
	}
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "startup", "startups":
		return RoleStartup, true
	case "investor", "investors":
		return RoleInvestor, true
	default:
		return "", false
	}
}
