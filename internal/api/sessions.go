package api

import (
	"context"
	"fmt"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Sessions wraps the player-facing session endpoints
type Sessions struct {
	c *client.Client
}

// NewSessions creates the session endpoint group
func NewSessions(c *client.Client) *Sessions {
	return &Sessions{c: c}
}

// List returns all upcoming sessions
func (g *Sessions) List(ctx context.Context) ([]model.GameSession, error) {
	var sessions []model.GameSession
	if err := g.c.Get(ctx, "/api/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Get fetches a single session with its roster
func (g *Sessions) Get(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	var s model.GameSession
	if err := g.c.Get(ctx, fmt.Sprintf("/api/sessions/%d", id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Mine lists sessions the caller has a character signed up for
func (g *Sessions) Mine(ctx context.Context) ([]model.GameSession, error) {
	var sessions []model.GameSession
	if err := g.c.Get(ctx, "/api/sessions/my", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SignUp adds a character to a session roster
func (g *Sessions) SignUp(ctx context.Context, id model.SessionID, characterID model.CharacterID) (*model.GameSession, error) {
	var s model.GameSession
	req := SignUpRequest{CharacterID: characterID}
	if err := g.c.Post(ctx, fmt.Sprintf("/api/sessions/%d/signup", id), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Withdraw removes a character from a session roster
func (g *Sessions) Withdraw(ctx context.Context, id model.SessionID, characterID model.CharacterID) error {
	return g.c.Delete(ctx, fmt.Sprintf("/api/sessions/%d/signup/%d", id, characterID))
}

// DMSessions wraps the game-master session management endpoints
type DMSessions struct {
	c *client.Client
}

// NewDMSessions creates the DM session endpoint group
func NewDMSessions(c *client.Client) *DMSessions {
	return &DMSessions{c: c}
}

// Mine lists sessions run by the calling DM
func (g *DMSessions) Mine(ctx context.Context) ([]model.GameSession, error) {
	var sessions []model.GameSession
	if err := g.c.Get(ctx, "/api/dm/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Create schedules a new session
func (g *DMSessions) Create(ctx context.Context, req SessionRequest) (*model.GameSession, error) {
	var s model.GameSession
	if err := g.c.Post(ctx, "/api/dm/sessions", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update edits an existing session
func (g *DMSessions) Update(ctx context.Context, id model.SessionID, req SessionRequest) (*model.GameSession, error) {
	var s model.GameSession
	if err := g.c.Put(ctx, fmt.Sprintf("/api/dm/sessions/%d", id), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Start marks a session as in progress
func (g *DMSessions) Start(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return g.post(ctx, id, "start", nil)
}

// Cancel calls off a scheduled session
func (g *DMSessions) Cancel(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return g.post(ctx, id, "cancel", nil)
}

// Complete finishes a session and awards rewards to all attendees
func (g *DMSessions) Complete(ctx context.Context, id model.SessionID, req CompleteSessionRequest) (*model.GameSession, error) {
	return g.post(ctx, id, "complete", req)
}

func (g *DMSessions) post(ctx context.Context, id model.SessionID, verb string, body any) (*model.GameSession, error) {
	var s model.GameSession
	if err := g.c.Post(ctx, fmt.Sprintf("/api/dm/sessions/%d/%s", id, verb), body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
