// Package api provides typed wrappers for each Torch Bearers endpoint
// group, mirroring how the backend organizes its controllers: auth,
// characters, DM tools, admin tools, and session scheduling.
package api

import (
	"time"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token     string   `json:"token"`
	PlayerID  string   `json:"playerId"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	DiscordID string   `json:"discordId,omitempty"`
}

// MeResponse is returned by the identity-lookup endpoint
type MeResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	DiscordID string   `json:"discordId,omitempty"`
}

// CreateCharacterRequest is the request body for creating a character
type CreateCharacterRequest struct {
	Name string `json:"name"`
}

// CharacterListResponse wraps the character collection endpoints
type CharacterListResponse struct {
	Characters []model.Character `json:"characters"`
}

// RoleInfo describes an assignable role
type RoleInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateGoldRequest is the request body for setting a character's gold
type UpdateGoldRequest struct {
	Gold int `json:"gold"`
}

// UpdateExperienceRequest is the request body for setting experience
type UpdateExperienceRequest struct {
	XP int `json:"xp"`
}

// UpdateSlotsRequest is the request body for setting a player's slots
type UpdateSlotsRequest struct {
	MaxSlots int `json:"maxSlots"`
}

// SignUpRequest is the request body for joining a session roster
type SignUpRequest struct {
	CharacterID model.CharacterID `json:"characterId"`
}

// SessionRequest is the request body for creating or updating a session
type SessionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	MaxPlayers  int       `json:"maxPlayers,omitempty"`
}

// CompleteSessionRequest is the request body for completing a session
type CompleteSessionRequest struct {
	GoldReward       int `json:"goldReward"`
	ExperienceReward int `json:"experienceReward"`
}
