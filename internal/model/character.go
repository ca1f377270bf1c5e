package model

import "time"

// CharacterID uniquely identifies a character
type CharacterID int64

// CharacterStatus is the lifecycle state of a character
type CharacterStatus string

// Character lifecycle: created pending, approved by a DM, then either
// retired by the player or killed by a DM. A dead character can be
// reactivated (back to approved) by a DM.
const (
	CharacterPending  CharacterStatus = "pending"
	CharacterApproved CharacterStatus = "approved"
	CharacterRetired  CharacterStatus = "retired"
	CharacterDead     CharacterStatus = "dead"
)

// Character represents a player character in the campaign
type Character struct {
	ID         CharacterID     `json:"id"`
	PlayerID   PlayerID        `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Name       string          `json:"name"`
	Status     CharacterStatus `json:"status"`
	Gold       int             `json:"gold"`
	Experience int             `json:"experience"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Active reports whether the character occupies a character slot
func (c *Character) Active() bool {
	return c.Status == CharacterPending || c.Status == CharacterApproved
}
