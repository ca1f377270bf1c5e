package api

import (
	"context"
	"fmt"
	"io"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Characters wraps the player-facing character endpoints
type Characters struct {
	c *client.Client
}

// NewCharacters creates the character endpoint group
func NewCharacters(c *client.Client) *Characters {
	return &Characters{c: c}
}

// Mine lists the calling player's characters
func (g *Characters) Mine(ctx context.Context) ([]model.Character, error) {
	var resp CharacterListResponse
	if err := g.c.Get(ctx, "/api/characters/my", &resp); err != nil {
		return nil, err
	}
	return resp.Characters, nil
}

// Get fetches a single character
func (g *Characters) Get(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	var ch model.Character
	if err := g.c.Get(ctx, fmt.Sprintf("/api/characters/%d", id), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create submits a new character for DM approval
func (g *Characters) Create(ctx context.Context, req CreateCharacterRequest) (*model.Character, error) {
	var ch model.Character
	if err := g.c.Post(ctx, "/api/characters", req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Retire retires one of the caller's characters
func (g *Characters) Retire(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	var ch model.Character
	if err := g.c.Post(ctx, fmt.Sprintf("/api/characters/%d/retire", id), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// UploadImage attaches a portrait image to a character
func (g *Characters) UploadImage(ctx context.Context, id model.CharacterID, filename string, file io.Reader) (*model.Character, error) {
	var ch model.Character
	path := fmt.Sprintf("/api/characters/%d/image", id)
	if err := g.c.PostMultipart(ctx, path, "image", filename, file, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}
