package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	credentials   map[model.PlayerID]*model.Credential
	usernameIndex map[string]model.PlayerID
	roles         map[string]*model.RoleRecord
	characters    map[model.CharacterID]*model.Character
	sessions      map[model.SessionID]*model.GameSession

	nextCharacterID model.CharacterID
	nextSessionID   model.SessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		credentials:   make(map[model.PlayerID]*model.Credential),
		usernameIndex: make(map[string]model.PlayerID),
		roles:         make(map[string]*model.RoleRecord),
		characters:    make(map[model.CharacterID]*model.Character),
		sessions:      make(map[model.SessionID]*model.GameSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.PlayerID] = cred
	s.usernameIndex[cred.Username] = cred.PlayerID
	return nil
}

func (s *Storage) GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return cred, nil
}

func (s *Storage) GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cred, ok := s.credentials[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return cred, nil
}

// Role operations

func (s *Storage) SaveRole(ctx context.Context, role *model.RoleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role.ID] = role
	return nil
}

func (s *Storage) GetRole(ctx context.Context, id string) (*model.RoleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id]
	if !ok {
		return nil, model.ErrRoleNotFound
	}
	return role, nil
}

func (s *Storage) ListRoles(ctx context.Context) ([]*model.RoleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]*model.RoleRecord, 0, len(s.roles))
	for _, r := range s.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles, nil
}

// Character operations

func (s *Storage) NextCharacterID(ctx context.Context) (model.CharacterID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCharacterID++
	return s.nextCharacterID, nil
}

func (s *Storage) SaveCharacter(ctx context.Context, ch *model.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[ch.ID] = ch
	return nil
}

func (s *Storage) GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.characters[id]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	return ch, nil
}

func (s *Storage) DeleteCharacter(ctx context.Context, id model.CharacterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.characters, id)
	return nil
}

func (s *Storage) ListCharacters(ctx context.Context) ([]*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chars := make([]*model.Character, 0, len(s.characters))
	for _, ch := range s.characters {
		chars = append(chars, ch)
	}
	sortCharacters(chars)
	return chars, nil
}

func (s *Storage) ListCharactersByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var chars []*model.Character
	for _, ch := range s.characters {
		if ch.PlayerID == playerID {
			chars = append(chars, ch)
		}
	}
	sortCharacters(chars)
	return chars, nil
}

func sortCharacters(chars []*model.Character) {
	sort.Slice(chars, func(i, j int) bool {
		return chars[i].ID < chars[j].ID
	})
}

// Session operations

func (s *Storage) NextSessionID(ctx context.Context) (model.SessionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSessionID++
	return s.nextSessionID, nil
}

func (s *Storage) SaveSession(ctx context.Context, sess *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.GameSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	sortSessions(sessions)
	return sessions, nil
}

func (s *Storage) ListSessionsByDM(ctx context.Context, dmID model.PlayerID) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []*model.GameSession
	for _, sess := range s.sessions {
		if sess.DMID == dmID {
			sessions = append(sessions, sess)
		}
	}
	sortSessions(sessions)
	return sessions, nil
}

func sortSessions(sessions []*model.GameSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ScheduledAt.Before(sessions[j].ScheduledAt)
	})
}
