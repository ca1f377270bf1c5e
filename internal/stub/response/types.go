// Package response defines the JSON bodies the stub server emits.
package response

import "github.com/SageMyrloc/Torchbearers-Frontend/internal/model"

// AuthResponse carries a fresh token plus the identity behind it
type AuthResponse struct {
	Token     string   `json:"token"`
	PlayerID  string   `json:"playerId"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	DiscordID string   `json:"discordId,omitempty"`
}

// AuthFromPlayer builds an AuthResponse for a player and token
func AuthFromPlayer(player *model.Player, token string) AuthResponse {
	return AuthResponse{
		Token:     token,
		PlayerID:  string(player.ID),
		Username:  player.Username,
		Roles:     model.RoleNames(player.Roles),
		DiscordID: player.DiscordID,
	}
}

// MeResponse is the identity payload for GET /api/auth/me
type MeResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	DiscordID string   `json:"discordId,omitempty"`
}

// MeFromPlayer builds a MeResponse for a player
func MeFromPlayer(player *model.Player) MeResponse {
	return MeResponse{
		ID:        string(player.ID),
		Username:  player.Username,
		Roles:     model.RoleNames(player.Roles),
		DiscordID: player.DiscordID,
	}
}

// CharacterList wraps a character collection
type CharacterList struct {
	Characters []model.Character `json:"characters"`
}

// CharacterListFrom dereferences stored characters into a list payload
func CharacterListFrom(chars []*model.Character) CharacterList {
	out := CharacterList{Characters: make([]model.Character, 0, len(chars))}
	for _, ch := range chars {
		out.Characters = append(out.Characters, *ch)
	}
	return out
}

// RoleInfo describes one assignable role
type RoleInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
