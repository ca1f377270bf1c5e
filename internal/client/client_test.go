package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ClientSuite) TestAttachesBearerToken() {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok-123"))
	err := c.Get(s.ctx, "/api/characters/my", nil)
	s.Require().NoError(err)
	s.Equal("Bearer tok-123", gotAuth)
}

func (s *ClientSuite) TestNoAuthorizationHeaderWithoutToken() {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Get(s.ctx, "/api/sessions", nil)
	s.Require().NoError(err)
	s.False(hasAuth)
}

func (s *ClientSuite) TestDecodesResult() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Aldric"}`))
	}))
	defer srv.Close()

	var result struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	c := New(srv.URL)
	err := c.Get(s.ctx, "/api/characters/7", &result)
	s.Require().NoError(err)
	s.Equal(7, result.ID)
	s.Equal("Aldric", result.Name)
}

func (s *ClientSuite) TestErrorWithMessageField() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"USERNAME_EXISTS","message":"Username already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Post(s.ctx, "/api/auth/register", map[string]string{}, nil)
	s.Require().Error(err)

	s.Equal("Username already exists", ErrorMessage(err, "fallback"))

	apiErr := &APIError{}
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusConflict, apiErr.StatusCode)
	s.Equal("USERNAME_EXISTS", apiErr.Code)
}

func (s *ClientSuite) TestErrorWithOnlyTitleField() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"One or more validation errors occurred."}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Post(s.ctx, "/api/characters", map[string]string{}, nil)
	s.Require().Error(err)
	s.Equal("One or more validation errors occurred.", ErrorMessage(err, "fallback"))
}

func (s *ClientSuite) TestErrorWithNeitherFieldUsesFallback() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Get(s.ctx, "/api/sessions", nil)
	s.Require().Error(err)
	s.Equal("Failed to load sessions", ErrorMessage(err, "Failed to load sessions"))
}

func (s *ClientSuite) TestNetworkErrorUsesFallback() {
	c := New("http://127.0.0.1:1")
	err := c.Get(s.ctx, "/api/sessions", nil)
	s.Require().Error(err)
	s.Equal("fallback", ErrorMessage(err, "fallback"))
}

func (s *ClientSuite) TestAuthFailureHookFiresOncePer401() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, WithToken("expired"))
	c.OnAuthFailure(func() { fired++ })

	err := c.Get(s.ctx, "/api/characters/my", nil)
	s.Require().Error(err)
	s.Equal(1, fired)

	apiErr := &APIError{}
	s.Require().ErrorAs(err, &apiErr)
	s.True(apiErr.IsAuthFailure())
}

func (s *ClientSuite) TestAuthFailureHookNotFiredForOtherErrors() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"FORBIDDEN","message":"You do not have permission"}`))
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, WithToken("tok"))
	c.OnAuthFailure(func() { fired++ })

	err := c.Get(s.ctx, "/api/admin/players", nil)
	s.Require().Error(err)
	s.Equal(0, fired)
}

func (s *ClientSuite) TestMultipartUpload() {
	var gotContentType, gotFilename, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		file, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	err := c.PostMultipart(s.ctx, "/api/characters/7/image", "image", "portrait.png", strings.NewReader("png-bytes"), nil)
	s.Require().NoError(err)
	s.Contains(gotContentType, "multipart/form-data")
	s.Equal("portrait.png", gotFilename)
	s.Equal("png-bytes", gotBody)
}
