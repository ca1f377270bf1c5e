package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
)

func player(roles ...model.Role) session.State {
	return session.State{Token: "tok", Roles: roles}
}

func TestDecide(t *testing.T) {
	anonymous := session.State{}
	loading := session.State{Loading: true}

	tests := []struct {
		name  string
		state session.State
		req   Requirement
		want  Decision
	}{
		{"loading wins over open pages", loading, None(), Loading},
		{"loading wins over role checks", loading, Role(model.RoleAdmin), Loading},

		{"open page allows anonymous", anonymous, None(), Allow},
		{"open page allows authenticated", player(model.RolePlayer), None(), Allow},

		{"authenticated page redirects anonymous", anonymous, Authenticated(), Redirect},
		{"authenticated page allows any login", player(), Authenticated(), Allow},

		{"role page redirects anonymous", anonymous, Role(model.RoleDM), Redirect},
		{"role page denies missing role", player(model.RolePlayer), Role(model.RoleDM), Denied},
		{"role page allows holder", player(model.RolePlayer, model.RoleDM), Role(model.RoleDM), Allow},

		{"any-of denies when none held", player(model.RolePlayer), AnyOf(model.RoleDM, model.RoleAdmin), Denied},
		{"any-of allows one held", player(model.RoleDM), AnyOf(model.RoleDM, model.RoleAdmin), Allow},
		{"any-of allows the other", player(model.RoleAdmin), AnyOf(model.RoleDM, model.RoleAdmin), Allow},
		{"empty any-of denies everyone", player(model.RoleAdmin), AnyOf(), Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.req))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "allow", Allow.String())
}
