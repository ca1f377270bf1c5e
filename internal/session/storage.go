package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the persisted representation of a session: the token
// plus denormalized identity fields. It is a best-effort cache; the
// in-memory State is authoritative and the cache is rebuilt from the
// backend on the next hydration if they disagree.
type Credentials struct {
	Token     string   `json:"token"`
	PlayerID  string   `json:"playerId"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	DiscordID string   `json:"discordId,omitempty"`
}

// CredentialStore persists session credentials between process runs
type CredentialStore interface {
	// Load returns the saved credentials, or (nil, nil) when none exist
	Load() (*Credentials, error)
	// Save overwrites the saved credentials
	Save(creds *Credentials) error
	// Clear removes any saved credentials; clearing an empty store is a no-op
	Clear() error
}

// FileStore persists credentials as a JSON file with user-only permissions
type FileStore struct {
	path string
}

// NewFileStore creates a credential store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialsPath returns the standard credentials file location
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".torchbearers", "credentials.json")
	}
	return filepath.Join(home, ".torchbearers", "credentials.json")
}

// Load implements CredentialStore
func (f *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save implements CredentialStore
func (f *FileStore) Save(creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

// Clear implements CredentialStore
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-memory credential store for tests
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

// NewMemoryStore creates an empty in-memory credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements CredentialStore
func (m *MemoryStore) Load() (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return nil, nil
	}
	copied := *m.creds
	return &copied, nil
}

// Save implements CredentialStore
func (m *MemoryStore) Save(creds *Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *creds
	m.creds = &copied
	return nil
}

// Clear implements CredentialStore
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}
