package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/mocks"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{
		Secret:        []byte("test-secret"),
		TokenDuration: time.Hour,
	})
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	player, token, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal("alice", player.Username)
	s.Equal(model.DefaultMaxSlots, player.MaxSlots)
	s.NotEmpty(player.ID)
}

func (s *ServiceSuite) TestRegisterFirstAccountGetsAllRoles() {
	first, _, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.ElementsMatch(model.AllRoles(), first.Roles)

	second, _, err := s.service.Register(s.ctx, "bob", "password123")
	s.Require().NoError(err)
	s.Equal([]model.Role{model.RolePlayer}, second.Roles)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	player, _, _ := s.service.Register(s.ctx, "alice", "password123")

	cred, err := s.storage.GetCredential(s.ctx, player.ID)
	s.Require().NoError(err)
	s.NotEmpty(cred.PasswordHash)
	s.NotEqual("password123", cred.PasswordHash)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, _, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "alice", "different")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, _, _ := s.service.Register(s.ctx, "alice", "password123")

	player, token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal(registered.ID, player.ID)
	s.NotEmpty(token)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, _, _ = s.service.Register(s.ctx, "alice", "password123")

	_, _, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, _, err := s.service.Login(s.ctx, "nonexistent", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Token tests

func (s *ServiceSuite) TestVerifyTokenRoundTrip() {
	player, token, _ := s.service.Register(s.ctx, "alice", "password123")

	verified, err := s.service.VerifyToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(player.ID, verified.ID)
	s.Equal(player.Roles, verified.Roles)
}

func (s *ServiceSuite) TestVerifyTokenExpired() {
	_, token, _ := s.service.Register(s.ctx, "alice", "password123")

	s.clock.Advance(2 * time.Hour)

	_, err := s.service.VerifyToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenGarbage() {
	_, err := s.service.VerifyToken(s.ctx, "not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenWrongSecret() {
	other := New(s.storage, s.clock, Config{Secret: []byte("other-secret")})
	player, _, _ := s.service.Register(s.ctx, "alice", "password123")

	token, err := other.IssueToken(player)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenReadsRolesFromStorage() {
	player, token, _ := s.service.Register(s.ctx, "alice", "password123")

	// Revoke a role directly; the old token must reflect it
	player.Roles = []model.Role{model.RolePlayer}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	verified, err := s.service.VerifyToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal([]model.Role{model.RolePlayer}, verified.Roles)
}

// EnsureRoles tests

func (s *ServiceSuite) TestEnsureRolesSeedsOnce() {
	s.Require().NoError(s.service.EnsureRoles(s.ctx))

	roles, err := s.storage.ListRoles(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(roles, 3)

	// A second call must not duplicate
	s.Require().NoError(s.service.EnsureRoles(s.ctx))
	again, _ := s.storage.ListRoles(s.ctx)
	s.Len(again, 3)
	s.Equal(roles, again)
}
