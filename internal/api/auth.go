package api

import (
	"context"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
)

// Auth wraps the authentication endpoints
type Auth struct {
	c *client.Client
}

// NewAuth creates the auth endpoint group
func NewAuth(c *client.Client) *Auth {
	return &Auth{c: c}
}

// Login exchanges credentials for a bearer token and identity payload
func (a *Auth) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns a live session
func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the identity behind the current bearer token
func (a *Auth) Me(ctx context.Context) (*MeResponse, error) {
	var resp MeResponse
	if err := a.c.Get(ctx, "/api/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
