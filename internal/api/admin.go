package api

import (
	"context"
	"fmt"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Admin wraps the administrator endpoints
type Admin struct {
	c *client.Client
}

// NewAdmin creates the admin endpoint group
func NewAdmin(c *client.Client) *Admin {
	return &Admin{c: c}
}

// Players lists every player account
func (g *Admin) Players(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	if err := g.c.Get(ctx, "/api/admin/players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Roles lists the assignable roles
func (g *Admin) Roles(ctx context.Context) ([]RoleInfo, error) {
	var roles []RoleInfo
	if err := g.c.Get(ctx, "/api/admin/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// AssignRole grants a role to a player
func (g *Admin) AssignRole(ctx context.Context, playerID model.PlayerID, roleID string) error {
	return g.c.Post(ctx, fmt.Sprintf("/api/admin/players/%s/roles/%s", playerID, roleID), nil, nil)
}

// RemoveRole revokes a role from a player
func (g *Admin) RemoveRole(ctx context.Context, playerID model.PlayerID, roleID string) error {
	return g.c.Delete(ctx, fmt.Sprintf("/api/admin/players/%s/roles/%s", playerID, roleID))
}

// UpdateGold sets a character's gold total
func (g *Admin) UpdateGold(ctx context.Context, id model.CharacterID, gold int) error {
	return g.c.Put(ctx, fmt.Sprintf("/api/admin/characters/%d/gold", id), UpdateGoldRequest{Gold: gold}, nil)
}

// UpdateExperience sets a character's experience total
func (g *Admin) UpdateExperience(ctx context.Context, id model.CharacterID, xp int) error {
	return g.c.Put(ctx, fmt.Sprintf("/api/admin/characters/%d/experience", id), UpdateExperienceRequest{XP: xp}, nil)
}

// DeleteCharacter permanently removes a character
func (g *Admin) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	return g.c.Delete(ctx, fmt.Sprintf("/api/admin/characters/%d", id))
}

// UpdateSlots sets a player's active character slot count
func (g *Admin) UpdateSlots(ctx context.Context, playerID model.PlayerID, maxSlots int) error {
	return g.c.Put(ctx, fmt.Sprintf("/api/admin/players/%s/slots", playerID), UpdateSlotsRequest{MaxSlots: maxSlots}, nil)
}
