// Package session holds the process-wide authentication state: who is
// logged in, which roles they hold, and the persisted credential cache
// that lets a session survive restarts. All mutations go through the
// Store's named operations; everything else takes snapshot reads.
package session

import "github.com/SageMyrloc/Torchbearers-Frontend/internal/model"

// State is a snapshot of the current session
type State struct {
	// Loading is true until the first Hydrate resolves
	Loading bool

	Token     string
	PlayerID  model.PlayerID
	Username  string
	Roles     []model.Role
	DiscordID string
}

// Authenticated reports whether a user is logged in.
// The token is the source of truth: token present means authenticated.
func (s State) Authenticated() bool {
	return s.Token != ""
}

// HasRole reports whether the session holds the given role.
// Always false when unauthenticated or when roles are missing.
func (s State) HasRole(role model.Role) bool {
	if !s.Authenticated() {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
