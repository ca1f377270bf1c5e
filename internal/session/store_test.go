package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/testutil"
)

// fakeIdentity is a scriptable IdentityClient
type fakeIdentity struct {
	loginFn    func(req api.LoginRequest) (*api.AuthResponse, error)
	registerFn func(req api.RegisterRequest) (*api.AuthResponse, error)
	meFn       func() (*api.MeResponse, error)
}

func (f *fakeIdentity) Login(_ context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	return f.loginFn(req)
}

func (f *fakeIdentity) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return f.registerFn(req)
}

func (f *fakeIdentity) Me(_ context.Context) (*api.MeResponse, error) {
	return f.meFn()
}

// fakeTokens records the token pushed into the HTTP layer
type fakeTokens struct {
	token string
}

func (f *fakeTokens) SetToken(token string) { f.token = token }
func (f *fakeTokens) ClearToken()           { f.token = "" }

type StoreSuite struct {
	suite.Suite
	identity *fakeIdentity
	tokens   *fakeTokens
	creds    *MemoryStore
	store    *Store
	ctx      context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.identity = &fakeIdentity{
		loginFn: func(api.LoginRequest) (*api.AuthResponse, error) {
			return nil, errors.New("not scripted")
		},
		registerFn: func(api.RegisterRequest) (*api.AuthResponse, error) {
			return nil, errors.New("not scripted")
		},
		meFn: func() (*api.MeResponse, error) {
			return nil, errors.New("not scripted")
		},
	}
	s.tokens = &fakeTokens{}
	s.creds = NewMemoryStore()
	s.store = New(s.identity, s.tokens, s.creds, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StoreSuite) kiraAuth() *api.AuthResponse {
	return &api.AuthResponse{
		Token:    "tok-kira",
		PlayerID: "p-1",
		Username: "kira",
		Roles:    []string{"Player", "DM"},
	}
}

// Initial state

func (s *StoreSuite) TestStartsLoadingAndUnauthenticated() {
	state := s.store.Snapshot()
	s.True(state.Loading)
	s.False(state.Authenticated())
	s.Empty(state.Token)
}

// Hydrate

func (s *StoreSuite) TestHydrateWithoutCredentialsResolvesLoggedOut() {
	s.store.Hydrate(s.ctx)

	state := s.store.Snapshot()
	s.False(state.Loading)
	s.False(state.Authenticated())
}

func (s *StoreSuite) TestHydrateWithValidTokenRestoresSession() {
	_ = s.creds.Save(&Credentials{Token: "tok-kira", PlayerID: "stale", Username: "stale", Roles: []string{"Admin"}})
	s.identity.meFn = func() (*api.MeResponse, error) {
		return &api.MeResponse{ID: "p-1", Username: "kira", Roles: []string{"Player", "DM"}}, nil
	}

	s.store.Hydrate(s.ctx)

	state := s.store.Snapshot()
	s.False(state.Loading)
	s.True(state.Authenticated())
	s.Equal("tok-kira", state.Token)
	s.Equal(model.PlayerID("p-1"), state.PlayerID)
	s.Equal("kira", state.Username)
	s.Equal("tok-kira", s.tokens.token)

	// Persisted cache is rebuilt from the backend, not the stale copy.
	saved, err := s.creds.Load()
	s.Require().NoError(err)
	s.Equal("p-1", saved.PlayerID)
	s.Equal("kira", saved.Username)
	s.ElementsMatch([]string{"Player", "DM"}, saved.Roles)
}

func (s *StoreSuite) TestHydrateWithRejectedTokenDemotesSilently() {
	_ = s.creds.Save(&Credentials{Token: "expired", Username: "kira"})
	s.identity.meFn = func() (*api.MeResponse, error) {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized}
	}

	s.store.Hydrate(s.ctx)

	state := s.store.Snapshot()
	s.False(state.Loading)
	s.False(state.Authenticated())
	s.Empty(s.tokens.token)

	saved, err := s.creds.Load()
	s.Require().NoError(err)
	s.Nil(saved)
}

// Login

func (s *StoreSuite) TestLoginSuccessEstablishesSession() {
	s.identity.loginFn = func(req api.LoginRequest) (*api.AuthResponse, error) {
		s.Equal("kira", req.Username)
		s.Equal("pw", req.Password)
		return s.kiraAuth(), nil
	}

	resp, err := s.store.Login(s.ctx, "kira", "pw")
	s.Require().NoError(err)
	s.Equal("kira", resp.Username)

	state := s.store.Snapshot()
	s.True(state.Authenticated())
	s.True(state.HasRole(model.RoleDM))
	s.Equal("tok-kira", s.tokens.token)

	saved, loadErr := s.creds.Load()
	s.Require().NoError(loadErr)
	s.Require().NotNil(saved)
	s.Equal("tok-kira", saved.Token)
}

func (s *StoreSuite) TestLoginFailureLeavesSessionUnauthenticated() {
	s.identity.loginFn = func(api.LoginRequest) (*api.AuthResponse, error) {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}
	}

	_, err := s.store.Login(s.ctx, "kira", "wrong")
	s.Require().Error(err)

	s.False(s.store.Snapshot().Authenticated())
	saved, _ := s.creds.Load()
	s.Nil(saved)
}

// Register

func (s *StoreSuite) TestRegisterSuccessEstablishesSession() {
	s.identity.registerFn = func(req api.RegisterRequest) (*api.AuthResponse, error) {
		return &api.AuthResponse{Token: "tok-new", PlayerID: "p-9", Username: req.Username, Roles: []string{"Player"}}, nil
	}

	_, err := s.store.Register(s.ctx, "newbie", "pw")
	s.Require().NoError(err)
	s.True(s.store.Snapshot().Authenticated())
	s.True(s.store.HasRole(model.RolePlayer))
}

func (s *StoreSuite) TestRegisterDuplicateUsernameSurfacesError() {
	s.identity.registerFn = func(api.RegisterRequest) (*api.AuthResponse, error) {
		return nil, &client.APIError{StatusCode: http.StatusConflict, Message: "Username already exists"}
	}

	_, err := s.store.Register(s.ctx, "kira", "pw")
	s.Require().Error(err)
	s.Equal("Username already exists", client.ErrorMessage(err, "fallback"))
	s.False(s.store.Snapshot().Authenticated())
}

// Logout

func (s *StoreSuite) TestLogoutClearsEverything() {
	s.identity.loginFn = func(api.LoginRequest) (*api.AuthResponse, error) {
		return s.kiraAuth(), nil
	}
	_, _ = s.store.Login(s.ctx, "kira", "pw")

	s.store.Logout()

	state := s.store.Snapshot()
	s.False(state.Authenticated())
	s.Empty(state.Token)
	s.Nil(state.Roles)
	s.Empty(s.tokens.token)

	saved, _ := s.creds.Load()
	s.Nil(saved)
}

func (s *StoreSuite) TestLogoutWhenLoggedOutIsIdempotent() {
	s.store.Logout()
	before := s.store.Snapshot()

	s.NotPanics(func() { s.store.Logout() })
	s.Equal(before, s.store.Snapshot())
}

// Role queries

func (s *StoreSuite) TestHasRoleFalseWhenUnauthenticated() {
	s.False(s.store.HasRole(model.RolePlayer))
	s.False(s.store.HasRole(model.RoleAdmin))
}

func (s *StoreSuite) TestHasRoleWithTokenButNoRoles() {
	// A session forced into a token-without-roles shape must answer
	// false, never fail.
	state := State{Token: "tok"}
	s.True(state.Authenticated())
	s.False(state.HasRole(model.RolePlayer))
}

// Subscriptions

func (s *StoreSuite) TestSubscribersNotifiedOnTransitions() {
	var seen []bool
	s.store.Subscribe(func(state State) {
		seen = append(seen, state.Authenticated())
	})

	s.identity.loginFn = func(api.LoginRequest) (*api.AuthResponse, error) {
		return s.kiraAuth(), nil
	}
	_, _ = s.store.Login(s.ctx, "kira", "pw")
	s.store.Logout()

	s.Equal([]bool{true, false}, seen)
}

// Global 401 handling: any request through the HTTP client forces the
// session back to logged out, wherever it originated.

func (s *StoreSuite) TestAnyUnauthorizedResponseForcesLogout() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	httpClient := client.New(srv.URL)
	store := New(api.NewAuth(httpClient), httpClient, s.creds, testutil.NopLogger())
	httpClient.OnAuthFailure(store.Logout)

	_ = s.creds.Save(&Credentials{Token: "tok", Username: "kira"})
	httpClient.SetToken("tok")

	// An arbitrary authenticated call, not an auth endpoint.
	err := httpClient.Get(context.Background(), "/api/dm/characters/pending", nil)
	s.Require().Error(err)

	saved, _ := s.creds.Load()
	s.Nil(saved)
	s.False(store.Snapshot().Authenticated())
}
