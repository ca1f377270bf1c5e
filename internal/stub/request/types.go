// Package request defines the JSON bodies the stub server accepts.
package request

import "time"

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateCharacterRequest is the body for POST /api/characters
type CreateCharacterRequest struct {
	Name string `json:"name"`
}

// SignUpRequest is the body for POST /api/sessions/{id}/signup
type SignUpRequest struct {
	CharacterID int64 `json:"characterId"`
}

// SessionRequest is the body for creating or updating a session
type SessionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduledAt"`
	MaxPlayers  int       `json:"maxPlayers"`
}

// CompleteSessionRequest is the body for POST /api/dm/sessions/{id}/complete
type CompleteSessionRequest struct {
	GoldReward       int `json:"goldReward"`
	ExperienceReward int `json:"experienceReward"`
}

// UpdateGoldRequest is the body for PUT /api/admin/characters/{id}/gold
type UpdateGoldRequest struct {
	Gold int `json:"gold"`
}

// UpdateExperienceRequest is the body for PUT /api/admin/characters/{id}/experience
type UpdateExperienceRequest struct {
	XP int `json:"xp"`
}

// UpdateSlotsRequest is the body for PUT /api/admin/players/{id}/slots
type UpdateSlotsRequest struct {
	MaxSlots int `json:"maxSlots"`
}
