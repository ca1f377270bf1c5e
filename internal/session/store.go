package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// IdentityClient is the slice of the backend API the store needs:
// credential exchange and identity lookup.
type IdentityClient interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.MeResponse, error)
}

// TokenHolder receives the bearer token for outbound requests
type TokenHolder interface {
	SetToken(token string)
	ClearToken()
}

// Store is the single authoritative source of authentication state.
// All transitions go through Hydrate, Login, Register, and Logout;
// consumers read snapshots and subscribe for changes.
type Store struct {
	identity IdentityClient
	tokens   TokenHolder
	creds    CredentialStore
	logger   *slog.Logger

	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// New creates a session store. The state starts empty with the loading
// flag set; it clears once Hydrate resolves.
func New(identity IdentityClient, tokens TokenHolder, creds CredentialStore, logger *slog.Logger) *Store {
	return &Store{
		identity: identity,
		tokens:   tokens,
		creds:    creds,
		logger:   logger,
		state:    State{Loading: true},
	}
}

// Snapshot returns a copy of the current session state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasRole reports whether the current session holds the given role.
// Never fails: unauthenticated sessions hold no roles.
func (s *Store) HasRole(role model.Role) bool {
	return s.Snapshot().HasRole(role)
}

// Subscribe registers a callback invoked after every state transition.
// Callbacks run outside the store's lock, in registration order.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Hydrate re-establishes the session from persisted credentials. Any
// failure (no credentials, unreadable cache, rejected token) completes
// as logged-out without an error; callers are never blocked on a stale
// token. The loading flag clears once this resolves.
func (s *Store) Hydrate(ctx context.Context) {
	saved, err := s.creds.Load()
	if err != nil {
		s.logger.Warn("failed to read saved credentials", slog.String("error", err.Error()))
		s.Logout()
		return
	}
	if saved == nil || saved.Token == "" {
		s.setState(State{})
		return
	}

	s.tokens.SetToken(saved.Token)

	me, err := s.identity.Me(ctx)
	if err != nil {
		s.logger.Debug("saved token rejected, treating as logged out", slog.String("error", err.Error()))
		s.Logout()
		return
	}

	state := State{
		Token:     saved.Token,
		PlayerID:  model.PlayerID(me.ID),
		Username:  me.Username,
		Roles:     model.ParseRoles(me.Roles),
		DiscordID: me.DiscordID,
	}
	s.setState(state)

	// The backend is authoritative; rebuild the cached copy from it.
	s.persist(state)
}

// Login exchanges credentials for a session. On failure the session
// stays unauthenticated and the error is returned for the caller's
// form to surface.
func (s *Store) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	resp, err := s.identity.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	s.establish(resp)
	return resp, nil
}

// Register creates an account and logs in as it. Same contract as Login;
// the backend additionally rejects duplicate usernames.
func (s *Store) Register(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	resp, err := s.identity.Register(ctx, api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	s.establish(resp)
	return resp, nil
}

// Logout unconditionally clears the session and persisted credentials.
// Safe to call in any state; never fails.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear saved credentials", slog.String("error", err.Error()))
	}
	s.tokens.ClearToken()
	s.setState(State{})
}

func (s *Store) establish(resp *api.AuthResponse) {
	state := State{
		Token:     resp.Token,
		PlayerID:  model.PlayerID(resp.PlayerID),
		Username:  resp.Username,
		Roles:     model.ParseRoles(resp.Roles),
		DiscordID: resp.DiscordID,
	}
	s.tokens.SetToken(resp.Token)
	s.persist(state)
	s.setState(state)
}

// persist writes the denormalized credential cache; failures degrade to
// a session that will not survive restart, not to a failed login.
func (s *Store) persist(state State) {
	creds := &Credentials{
		Token:     state.Token,
		PlayerID:  string(state.PlayerID),
		Username:  state.Username,
		Roles:     model.RoleNames(state.Roles),
		DiscordID: state.DiscordID,
	}
	if err := s.creds.Save(creds); err != nil {
		s.logger.Warn("failed to save credentials", slog.String("error", err.Error()))
	}
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
