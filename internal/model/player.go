package model

import "time"

// PlayerID uniquely identifies a player account across the system
type PlayerID string

// Player represents a registered account holder
type Player struct {
	ID        PlayerID  `json:"id"`
	Username  string    `json:"username"`
	Roles     []Role    `json:"roles"`
	MaxSlots  int       `json:"maxSlots"` // active character slots (1-10)
	DiscordID string    `json:"discordId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasRole reports whether the player holds the given role
func (p *Player) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credential holds a player's login secret
// Stored separately from Player so the hash never travels with identity data
type Credential struct {
	PlayerID     PlayerID  `json:"playerId"`
	Username     string    `json:"username"` // login username (immutable)
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultMaxSlots is the number of active character slots a new player gets
const DefaultMaxSlots = 1
