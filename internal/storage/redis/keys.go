package redis

import (
	"fmt"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Key prefix for all campaign data
const keyPrefix = "torchbearers"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// credentialKey returns the Redis key for a Credential
func credentialKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// roleKey returns the Redis key for a RoleRecord
func roleKey(id string) string {
	return fmt.Sprintf("%s:role:%s", keyPrefix, id)
}

// rolesIndexKey returns the Redis key for the SET of all role keys
func rolesIndexKey() string {
	return fmt.Sprintf("%s:idx:roles", keyPrefix)
}

// characterKey returns the Redis key for a Character
func characterKey(id model.CharacterID) string {
	return fmt.Sprintf("%s:character:%d", keyPrefix, id)
}

// charactersIndexKey returns the Redis key for the SET of all character keys
func charactersIndexKey() string {
	return fmt.Sprintf("%s:idx:characters", keyPrefix)
}

// charactersForPlayerIndexKey returns the Redis key for the SET of a player's character keys
func charactersForPlayerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:characters_for_player:%s", keyPrefix, playerID)
}

// characterSeqKey returns the Redis key for the character id counter
func characterSeqKey() string {
	return fmt.Sprintf("%s:seq:character", keyPrefix)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%d", keyPrefix, id)
}

// sessionsIndexKey returns the Redis key for the SET of all session keys
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

// sessionsForDMIndexKey returns the Redis key for the SET of a DM's session keys
func sessionsForDMIndexKey(dmID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:sessions_for_dm:%s", keyPrefix, dmID)
}

// sessionSeqKey returns the Redis key for the session id counter
func sessionSeqKey() string {
	return fmt.Sprintf("%s:seq:session", keyPrefix)
}
