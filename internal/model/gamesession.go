package model

import "time"

// SessionID uniquely identifies a game session
type SessionID int64

// SessionStatus is the lifecycle state of a game session
type SessionStatus string

// Session lifecycle: scheduled by a DM, optionally started, then either
// completed (awarding rewards to all signed-up characters) or cancelled.
const (
	SessionScheduled SessionStatus = "scheduled"
	SessionStarted   SessionStatus = "started"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session limits
const (
	MinPartySize = 1
	MaxPartySize = 10
)

// GameSession represents a scheduled play session run by a DM
type GameSession struct {
	ID               SessionID     `json:"id"`
	DMID             PlayerID      `json:"dmId"`
	DMName           string        `json:"dmName"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	ScheduledAt      time.Time     `json:"scheduledAt"`
	MaxPlayers       int           `json:"maxPlayers,omitempty"` // 0 means unlimited
	Status           SessionStatus `json:"status"`
	GoldReward       int           `json:"goldReward"`
	ExperienceReward int           `json:"experienceReward"`
	Signups          []Signup      `json:"signups"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Signup records one character's place on a session roster
type Signup struct {
	CharacterID   CharacterID `json:"characterId"`
	CharacterName string      `json:"characterName"`
	PlayerID      PlayerID    `json:"playerId"`
	PlayerName    string      `json:"playerName"`
	SignedUpAt    time.Time   `json:"signedUpAt"`
}

// Full reports whether the roster has reached its party size limit
func (s *GameSession) Full() bool {
	return s.MaxPlayers > 0 && len(s.Signups) >= s.MaxPlayers
}

// SignupFor returns the signup for the given character, if present
func (s *GameSession) SignupFor(id CharacterID) *Signup {
	for i := range s.Signups {
		if s.Signups[i].CharacterID == id {
			return &s.Signups[i]
		}
	}
	return nil
}
