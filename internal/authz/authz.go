// Package authz decides page-level access from the current session and a
// declared requirement. Decisions are pure: no side effects, re-evaluated
// on every session change.
package authz

import (
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
)

// Decision is the outcome of evaluating a requirement
type Decision int

const (
	// Loading means session hydration has not resolved yet
	Loading Decision = iota
	// Redirect means the viewer must authenticate first
	Redirect
	// Denied means the viewer is authenticated but lacks a required role
	Denied
	// Allow means the page may render
	Allow
)

// String returns the decision name for logs and messages
func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	case Allow:
		return "allow"
	}
	return "unknown"
}

type kind int

const (
	kindNone kind = iota
	kindAuthenticated
	kindRole
	kindAnyOf
)

// Requirement declares what a page demands of the viewer
type Requirement struct {
	kind  kind
	roles []model.Role
}

// None permits everyone, authenticated or not
func None() Requirement {
	return Requirement{kind: kindNone}
}

// Authenticated permits any logged-in user
func Authenticated() Requirement {
	return Requirement{kind: kindAuthenticated}
}

// Role permits users holding the given role
func Role(r model.Role) Requirement {
	return Requirement{kind: kindRole, roles: []model.Role{r}}
}

// AnyOf permits users holding at least one of the given roles
func AnyOf(roles ...model.Role) Requirement {
	return Requirement{kind: kindAnyOf, roles: roles}
}

// Decide evaluates a requirement against a session snapshot:
//  1. hydration still in flight wins over everything,
//  2. any requirement beyond None demands authentication,
//  3. role requirements demand membership.
func Decide(state session.State, req Requirement) Decision {
	if state.Loading {
		return Loading
	}
	if req.kind == kindNone {
		return Allow
	}
	if !state.Authenticated() {
		return Redirect
	}

	switch req.kind {
	case kindRole:
		if !state.HasRole(req.roles[0]) {
			return Denied
		}
	case kindAnyOf:
		held := false
		for _, r := range req.roles {
			if state.HasRole(r) {
				held = true
				break
			}
		}
		if !held {
			return Denied
		}
	}

	return Allow
}
