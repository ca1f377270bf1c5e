package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
)

// Claims is the JWT payload issued for a logged-in player
type Claims struct {
	jwt.RegisteredClaims
	PlayerID string   `json:"playerId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Config holds configuration for the auth service
type Config struct {
	Secret        []byte
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service handles registration, login and token verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret        []byte
	tokenDuration time.Duration
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		secret:        cfg.Secret,
		tokenDuration: cfg.TokenDuration,
	}
}

// EnsureRoles seeds the assignable roles on first boot
func (s *Service) EnsureRoles(ctx context.Context) error {
	existing, err := s.storage.ListRoles(ctx)
	if err != nil {
		return err
	}

	have := make(map[model.Role]bool, len(existing))
	for _, r := range existing {
		have[r.Name] = true
	}

	for _, name := range model.AllRoles() {
		if have[name] {
			continue
		}
		record := &model.RoleRecord{
			ID:   uuid.NewString(),
			Name: name,
		}
		if err := s.storage.SaveRole(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// Register creates a player account and returns it with a fresh token.
// The first account registered gets every role so a new install always
// has an admin.
func (s *Service) Register(ctx context.Context, username, password string) (*model.Player, string, error) {
	_, err := s.storage.GetCredentialByUsername(ctx, username)
	if err == nil {
		return nil, "", ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	count, err := s.storage.CountPlayers(ctx)
	if err != nil {
		return nil, "", err
	}

	roles := []model.Role{model.RolePlayer}
	if count == 0 {
		roles = model.AllRoles()
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Username:  username,
		Roles:     roles,
		MaxSlots:  model.DefaultMaxSlots,
		CreatedAt: now,
	}

	cred := &model.Credential{
		PlayerID:     player.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, "", err
	}
	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(player)
	if err != nil {
		return nil, "", err
	}
	return player, token, nil
}

// Login authenticates a player and returns it with a fresh token
func (s *Service) Login(ctx context.Context, username, password string) (*model.Player, string, error) {
	cred, err := s.storage.GetCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, cred.PlayerID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(player)
	if err != nil {
		return nil, "", err
	}
	return player, token, nil
}

// IssueToken signs a bearer token for the player
func (s *Service) IssueToken(player *model.Player) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(player.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			ID:        uuid.NewString(),
		},
		PlayerID: string(player.ID),
		Username: player.Username,
		Roles:    model.RoleNames(player.Roles),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a bearer token and loads the player behind it.
// Roles come from storage, not the token, so a revoked role takes
// effect on the next request rather than at token expiry.
func (s *Service) VerifyToken(ctx context.Context, token string) (*model.Player, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	player, err := s.storage.GetPlayer(ctx, model.PlayerID(claims.PlayerID))
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return player, nil
}
