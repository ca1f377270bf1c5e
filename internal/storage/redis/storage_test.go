package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Username:  "alice",
		Roles:     []model.Role{model.RolePlayer, model.RoleDM},
		MaxSlots:  2,
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.Username, retrieved.Username)
	s.Equal(player.Roles, retrieved.Roles)
	s.Equal(player.MaxSlots, retrieved.MaxSlots)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListAndCountPlayers() {
	base := time.Now()
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", Username: "alice", CreatedAt: base})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2", Username: "bob", CreatedAt: base.Add(time.Minute)})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("alice", players[0].Username)

	n, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

// Credential tests

func (s *StorageSuite) TestCredentialUsernameIndex() {
	cred := &model.Credential{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}

	err := s.storage.SaveCredential(s.ctx, cred)
	s.Require().NoError(err)

	byName, err := s.storage.GetCredentialByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)

	_, err = s.storage.GetCredentialByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Role tests

func (s *StorageSuite) TestSaveAndListRoles() {
	_ = s.storage.SaveRole(s.ctx, &model.RoleRecord{ID: "r1", Name: model.RolePlayer})
	_ = s.storage.SaveRole(s.ctx, &model.RoleRecord{ID: "r2", Name: model.RoleAdmin})

	role, err := s.storage.GetRole(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(model.RolePlayer, role.Name)

	roles, err := s.storage.ListRoles(s.ctx)
	s.Require().NoError(err)
	s.Len(roles, 2)
}

// Character tests

func (s *StorageSuite) TestNextCharacterIDIsSequential() {
	id1, err := s.storage.NextCharacterID(s.ctx)
	s.Require().NoError(err)
	id2, err := s.storage.NextCharacterID(s.ctx)
	s.Require().NoError(err)
	s.Equal(id1+1, id2)
}

func (s *StorageSuite) TestSaveAndGetCharacter() {
	ch := &model.Character{
		ID:       1,
		PlayerID: "player-1",
		Name:     "Aldric",
		Status:   model.CharacterApproved,
		Gold:     100,
	}

	err := s.storage.SaveCharacter(s.ctx, ch)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCharacter(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Aldric", retrieved.Name)
	s.Equal(100, retrieved.Gold)
}

func (s *StorageSuite) TestDeleteCharacterClearsIndexes() {
	_ = s.storage.SaveCharacter(s.ctx, &model.Character{ID: 1, PlayerID: "p1", Name: "Aldric"})

	err := s.storage.DeleteCharacter(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetCharacter(s.ctx, 1)
	s.ErrorIs(err, model.ErrCharacterNotFound)

	chars, err := s.storage.ListCharactersByPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Empty(chars)
}

func (s *StorageSuite) TestDeleteCharacterMissingIsNoop() {
	s.NoError(s.storage.DeleteCharacter(s.ctx, 99))
}

func (s *StorageSuite) TestListCharactersByPlayer() {
	_ = s.storage.SaveCharacter(s.ctx, &model.Character{ID: 1, PlayerID: "p1", Name: "Aldric"})
	_ = s.storage.SaveCharacter(s.ctx, &model.Character{ID: 2, PlayerID: "p2", Name: "Mara"})
	_ = s.storage.SaveCharacter(s.ctx, &model.Character{ID: 3, PlayerID: "p1", Name: "Bren"})

	chars, err := s.storage.ListCharactersByPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(chars, 2)
	s.Equal("Aldric", chars[0].Name)
	s.Equal("Bren", chars[1].Name)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSessionWithRoster() {
	sess := &model.GameSession{
		ID:          1,
		DMID:        "dm-1",
		Title:       "The Sunken Crypt",
		Status:      model.SessionScheduled,
		ScheduledAt: time.Now().Add(time.Hour).Truncate(time.Second),
		Signups: []model.Signup{
			{CharacterID: 1, CharacterName: "Aldric", PlayerID: "p1", PlayerName: "alice"},
		},
	}

	err := s.storage.SaveSession(s.ctx, sess)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("The Sunken Crypt", retrieved.Title)
	s.Require().Len(retrieved.Signups, 1)
	s.Equal("Aldric", retrieved.Signups[0].CharacterName)
}

func (s *StorageSuite) TestListSessionsByDM() {
	base := time.Now()
	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: 1, DMID: "dm-1", Title: "One", ScheduledAt: base.Add(2 * time.Hour)})
	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: 2, DMID: "dm-2", Title: "Two", ScheduledAt: base.Add(time.Hour)})

	all, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Two", all[0].Title)

	mine, err := s.storage.ListSessionsByDM(s.ctx, "dm-1")
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("One", mine[0].Title)
}
