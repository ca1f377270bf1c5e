package storage

import (
	"context"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	CountPlayers(ctx context.Context) (int, error)

	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error)
	GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error)

	// Role operations
	SaveRole(ctx context.Context, role *model.RoleRecord) error
	GetRole(ctx context.Context, id string) (*model.RoleRecord, error)
	ListRoles(ctx context.Context) ([]*model.RoleRecord, error)

	// Character operations
	NextCharacterID(ctx context.Context) (model.CharacterID, error)
	SaveCharacter(ctx context.Context, ch *model.Character) error
	GetCharacter(ctx context.Context, id model.CharacterID) (*model.Character, error)
	DeleteCharacter(ctx context.Context, id model.CharacterID) error
	ListCharacters(ctx context.Context) ([]*model.Character, error)
	ListCharactersByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Character, error)

	// Session operations
	NextSessionID(ctx context.Context) (model.SessionID, error)
	SaveSession(ctx context.Context, sess *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	ListSessions(ctx context.Context) ([]*model.GameSession, error)
	ListSessionsByDM(ctx context.Context, dmID model.PlayerID) ([]*model.GameSession, error)
}
