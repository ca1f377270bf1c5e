package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage/memory"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/auth"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	credsFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(projectRoot, "bin", "torchctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/torchctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		credsFile:  filepath.Join(t.TempDir(), "credentials.json"),
	}
}

// secondRunner shares the binary but keeps its own session
func (r *cliRunner) secondRunner(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{
		binaryPath: r.binaryPath,
		serverURL:  r.serverURL,
		credsFile:  filepath.Join(t.TempDir(), "credentials.json"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--credentials", r.credsFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real stub server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store := memory.New()
	authService := auth.New(store, clock.New(), auth.Config{
		Secret:        []byte("e2e-secret"),
		TokenDuration: time.Hour,
	})
	require.NoError(t, authService.EnsureRoles(context.Background()))

	router := stub.NewRouter(stub.RouterConfig{
		Logger:      logger,
		AuthService: authService,
		Storage:     store,
		Clock:       clock.New(),
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			_ = server.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type messageResponse struct {
	Message string `json:"message"`
}

// whoamiState mirrors the session snapshot whoami emits in JSON mode
type whoamiState struct {
	Token    string
	PlayerID string
	Username string
	Roles    []string
}

func (r *cliRunner) register(t *testing.T, username string) {
	t.Helper()

	output, err := r.run("register", "--user", username, "--pass", "secret123", "--confirm", "secret123")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Contains(t, msg.Message, username)
}

func (r *cliRunner) myCharacters(t *testing.T) []model.Character {
	t.Helper()

	output, err := r.run("character", "list")
	require.NoError(t, err, "output: %s", output)

	var chars []model.Character
	require.NoError(t, json.Unmarshal([]byte(output), &chars))
	return chars
}

func (r *cliRunner) mySessions(t *testing.T) []model.GameSession {
	t.Helper()

	output, err := r.run("dm", "session", "list")
	require.NoError(t, err, "output: %s", output)

	var sessions []model.GameSession
	require.NoError(t, json.Unmarshal([]byte(output), &sessions))
	return sessions
}

// Tests

func TestCLI_RegisterAndWhoami(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// First account on a fresh server gets every role
	cli.register(t, "alice")

	output, err := cli.run("whoami")
	require.NoError(t, err, "output: %s", output)

	var state whoamiState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "alice", state.Username)
	assert.NotEmpty(t, state.Token)
	assert.Contains(t, state.Roles, "Admin")

	// Logout clears the cached session
	output, err = cli.run("logout")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("whoami")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Empty(t, state.Token)
}

func TestCLI_LoginPersistsAcrossInvocations(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	_, err := cli.run("logout")
	require.NoError(t, err)

	output, err := cli.run("login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	// A separate invocation picks the session up from the cache
	output, err = cli.run("whoami")
	require.NoError(t, err, "output: %s", output)

	var state whoamiState
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Equal(t, "alice", state.Username)

	// Wrong password surfaces the backend message
	fresh := cli.secondRunner(t)
	output, err = fresh.run("login", "--user", "alice", "--pass", "wrong")
	assert.Error(t, err)
	assert.Contains(t, output, "Invalid username or password")
}

func TestCLI_CharacterValidation(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	// Too-short name is rejected before any request is made
	output, err := cli.run("character", "create", "--name", "X")
	assert.Error(t, err)
	assert.Contains(t, output, "Name must be at least 2 characters")
	assert.Empty(t, cli.myCharacters(t))

	// Invalid characters in the name
	output, err = cli.run("character", "create", "--name", "R2-D2!")
	assert.Error(t, err)
	assert.Contains(t, output, "letters, spaces, hyphens, and apostrophes")

	// Two letters is the minimum
	output, err = cli.run("character", "create", "--name", "Al")
	require.NoError(t, err, "output: %s", output)

	chars := cli.myCharacters(t)
	require.Len(t, chars, 1)
	assert.Equal(t, "Al", chars[0].Name)
	assert.Equal(t, model.CharacterPending, chars[0].Status)
}

func TestCLI_SessionFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	// Create and approve a character
	output, err := cli.run("character", "create", "--name", "Mirna")
	require.NoError(t, err, "output: %s", output)

	chars := cli.myCharacters(t)
	require.Len(t, chars, 1)
	charID := chars[0].ID

	output, err = cli.run("dm", "approve", fmt.Sprintf("%d", charID))
	require.NoError(t, err, "output: %s", output)

	// Schedule a session and sign up
	at := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04")
	output, err = cli.run("dm", "session", "create", "--title", "Into the Barrows", "--at", at, "--max-players", "4")
	require.NoError(t, err, "output: %s", output)

	sessions := cli.mySessions(t)
	require.Len(t, sessions, 1)
	sessionID := sessions[0].ID

	output, err = cli.run("session", "signup", fmt.Sprintf("%d", sessionID),
		"--character", fmt.Sprintf("%d", charID))
	require.NoError(t, err, "output: %s", output)

	// Signing up twice is refused
	output, err = cli.run("session", "signup", fmt.Sprintf("%d", sessionID),
		"--character", fmt.Sprintf("%d", charID))
	assert.Error(t, err)
	assert.Contains(t, output, "Already signed up")

	// Complete the session; rewards land on the character
	output, err = cli.run("dm", "session", "complete", fmt.Sprintf("%d", sessionID),
		"--gold", "50", "--xp", "100")
	require.NoError(t, err, "output: %s", output)

	chars = cli.myCharacters(t)
	require.Len(t, chars, 1)
	assert.Equal(t, 50, chars[0].Gold)
	assert.Equal(t, 100, chars[0].Experience)
}

func TestCLI_SessionValidation(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	// Past dates are rejected locally
	output, err := cli.run("dm", "session", "create", "--title", "Too Late",
		"--at", time.Now().Add(-time.Hour).Format("2006-01-02 15:04"))
	assert.Error(t, err)
	assert.Contains(t, output, "Date must be in the future")

	// Party size over the cap
	output, err = cli.run("dm", "session", "create", "--title", "Horde",
		"--at", time.Now().Add(time.Hour).Format("2006-01-02 15:04"),
		"--max-players", "11")
	assert.Error(t, err)
	assert.Contains(t, output, "Maximum 10 players allowed")

	assert.Empty(t, cli.mySessions(t))
}

func TestCLI_RoleGating(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	// Second account holds only the Player role
	bob := cli.secondRunner(t)
	bob.register(t, "bob")

	output, err := bob.run("dm", "pending")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "access denied")

	output, err = bob.run("admin", "players")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "access denied")

	// Not logged in at all points at login instead
	fresh := cli.secondRunner(t)
	output, err = fresh.run("character", "list")
	assert.Error(t, err)
	assert.Contains(t, output, "torchctl login")
}

func TestCLI_ExpiredSessionClearsCredentials(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.register(t, "alice")

	// Corrupt the cached token so the next request comes back 401
	data, err := os.ReadFile(cli.credsFile)
	require.NoError(t, err)

	var creds session.Credentials
	require.NoError(t, json.Unmarshal(data, &creds))
	creds.Token = "stale-token"
	data, err = json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cli.credsFile, data, 0600))

	output, err := cli.run("character", "list")
	assert.Error(t, err)
	assert.Contains(t, output, "Session expired. Please log in again.")

	// The credential cache is gone; the user is asked to log in
	_, statErr := os.Stat(cli.credsFile)
	assert.True(t, os.IsNotExist(statErr))

	output, err = cli.run("character", "list")
	assert.Error(t, err)
	assert.Contains(t, output, "torchctl login")
}
