package directory

// SystemRole represents the coarse capability tier of a user, orthogonal to
// their business group
type SystemRole string

const (
	// RoleMember is a regular user with no elevated visibility
	RoleMember SystemRole = "MEMBER"
	// RoleLeader can see rows owned by their transitive subordinates
	RoleLeader SystemRole = "LEADER"
	// RoleAdmin bypasses all row and column checks unconditionally
	RoleAdmin SystemRole = "ADMIN"
)

// Valid reports whether the role is one of the known system roles
func (r SystemRole) Valid() bool {
	switch r {
	case RoleMember, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

// User represents a person (or simulated identity) in the directory.
// ManagerID forms a forest: each user has at most one direct manager. A
// dangling ManagerID resolves to "no such user" rather than an error.
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	SystemRole SystemRole `json:"system_role" yaml:"role"`
	GroupID    string     `json:"group_id" yaml:"group"`
	ManagerID  string     `json:"manager_id,omitempty" yaml:"manager,omitempty"`
}

// RoleGroup is a business-permission cohort. Groups are only ever used as
// keys into per-column permission maps.
type RoleGroup struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	DisplayColor string `json:"display_color" yaml:"color"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}
