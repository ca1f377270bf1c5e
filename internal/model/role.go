package model

import "fmt"

// Role names a permission level granted to a player
type Role string

// The closed set of roles the backend knows about
const (
	RolePlayer Role = "Player"
	RoleDM     Role = "DM"
	RoleAdmin  Role = "Admin"
)

// AllRoles lists every known role in display order
func AllRoles() []Role {
	return []Role{RolePlayer, RoleDM, RoleAdmin}
}

// ParseRole converts a role name from the wire into a Role
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RolePlayer, RoleDM, RoleAdmin:
		return Role(name), nil
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// ParseRoles converts a list of role names, skipping unknown entries.
// The backend may grow roles the client does not know; an unknown role
// grants nothing rather than failing the whole identity payload.
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		if r, err := ParseRole(n); err == nil {
			roles = append(roles, r)
		}
	}
	return roles
}

// RoleRecord is a stored assignable role. Roles are seeded with stable
// ids so grants reference the id, not the display name.
type RoleRecord struct {
	ID   string `json:"id"`
	Name Role   `json:"name"`
}

// RoleNames converts roles back to their wire representation
func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
