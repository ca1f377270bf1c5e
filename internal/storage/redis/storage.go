package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	values, err := s.mgetIndex(ctx, playersIndexKey())
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		var player model.Player
		if err := json.Unmarshal([]byte(val), &player); err != nil {
			continue
		}
		players = append(players, &player)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, playersIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialKey(cred.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(cred.Username), string(cred.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error) {
	data, err := s.client.Get(ctx, credentialKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *Storage) GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetCredential(ctx, model.PlayerID(playerIDStr))
}

// Role operations

func (s *Storage) SaveRole(ctx context.Context, role *model.RoleRecord) error {
	data, err := json.Marshal(role)
	if err != nil {
		return err
	}

	key := roleKey(role.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, rolesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRole(ctx context.Context, id string) (*model.RoleRecord, error) {
	data, err := s.client.Get(ctx, roleKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoleNotFound
		}
		return nil, err
	}

	var role model.RoleRecord
	if err := json.Unmarshal(data, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Storage) ListRoles(ctx context.Context) ([]*model.RoleRecord, error) {
	values, err := s.mgetIndex(ctx, rolesIndexKey())
	if err != nil {
		return nil, err
	}

	roles := make([]*model.RoleRecord, 0, len(values))
	for _, val := range values {
		var role model.RoleRecord
		if err := json.Unmarshal([]byte(val), &role); err != nil {
			continue
		}
		roles = append(roles, &role)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles, nil
}

// Character operations

func (s *Storage) NextCharacterID(ctx context.Context) (model.CharacterID, error) {
	id, err := s.client.Incr(ctx, characterSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.CharacterID(id), nil
}

func (s *Storage) SaveCharacter(ctx context.Context, ch *model.Character) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	key := characterKey(ch.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, charactersIndexKey(), key)
	pipe.SAdd(ctx, charactersForPlayerIndexKey(ch.PlayerID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	data, err := s.client.Get(ctx, characterKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, err
	}

	var ch model.Character
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *Storage) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	// The player index entry needs the owner, so load before deleting
	ch, err := s.GetCharacter(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCharacterNotFound) {
			return nil
		}
		return err
	}

	key := characterKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, charactersIndexKey(), key)
	pipe.SRem(ctx, charactersForPlayerIndexKey(ch.PlayerID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListCharacters(ctx context.Context) ([]*model.Character, error) {
	return s.listCharacters(ctx, charactersIndexKey())
}

func (s *Storage) ListCharactersByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Character, error) {
	return s.listCharacters(ctx, charactersForPlayerIndexKey(playerID))
}

func (s *Storage) listCharacters(ctx context.Context, indexKey string) ([]*model.Character, error) {
	values, err := s.mgetIndex(ctx, indexKey)
	if err != nil {
		return nil, err
	}

	chars := make([]*model.Character, 0, len(values))
	for _, val := range values {
		var ch model.Character
		if err := json.Unmarshal([]byte(val), &ch); err != nil {
			continue
		}
		chars = append(chars, &ch)
	}
	sort.Slice(chars, func(i, j int) bool {
		return chars[i].ID < chars[j].ID
	})
	return chars, nil
}

// Session operations

func (s *Storage) NextSessionID(ctx context.Context) (model.SessionID, error) {
	id, err := s.client.Incr(ctx, sessionSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.SessionID(id), nil
}

func (s *Storage) SaveSession(ctx context.Context, sess *model.GameSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	key := sessionKey(sess.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, sessionsIndexKey(), key)
	pipe.SAdd(ctx, sessionsForDMIndexKey(sess.DMID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var sess model.GameSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	return s.listSessions(ctx, sessionsIndexKey())
}

func (s *Storage) ListSessionsByDM(ctx context.Context, dmID model.PlayerID) ([]*model.GameSession, error) {
	return s.listSessions(ctx, sessionsForDMIndexKey(dmID))
}

func (s *Storage) listSessions(ctx context.Context, indexKey string) ([]*model.GameSession, error) {
	values, err := s.mgetIndex(ctx, indexKey)
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		var sess model.GameSession
		if err := json.Unmarshal([]byte(val), &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ScheduledAt.Before(sessions[j].ScheduledAt)
	})
	return sessions, nil
}

// mgetIndex fetches every value named by an index set in one MGET
func (s *Storage) mgetIndex(ctx context.Context, indexKey string) ([]string, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		result = append(result, val.(string))
	}
	return result, nil
}
