package api

import (
	"context"
	"fmt"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// DM wraps the game-master character management endpoints
type DM struct {
	c *client.Client
}

// NewDM creates the DM endpoint group
func NewDM(c *client.Client) *DM {
	return &DM{c: c}
}

// Pending lists characters awaiting approval
func (g *DM) Pending(ctx context.Context) ([]model.Character, error) {
	var resp CharacterListResponse
	if err := g.c.Get(ctx, "/api/dm/characters/pending", &resp); err != nil {
		return nil, err
	}
	return resp.Characters, nil
}

// All lists every character in the campaign
func (g *DM) All(ctx context.Context) ([]model.Character, error) {
	var resp CharacterListResponse
	if err := g.c.Get(ctx, "/api/dm/characters", &resp); err != nil {
		return nil, err
	}
	return resp.Characters, nil
}

// Approve marks a pending character as approved
func (g *DM) Approve(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	return g.post(ctx, id, "approve")
}

// Kill marks an approved character as dead
func (g *DM) Kill(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	return g.post(ctx, id, "kill")
}

// Activate returns a dead character to play
func (g *DM) Activate(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	return g.post(ctx, id, "activate")
}

func (g *DM) post(ctx context.Context, id model.CharacterID, verb string) (*model.Character, error) {
	var ch model.Character
	if err := g.c.Post(ctx, fmt.Sprintf("/api/dm/characters/%d/%s", id, verb), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}
