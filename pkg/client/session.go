package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redcore/yabutech-api/pkg/user"
)

// storageKey is the fixed key the token is persisted under
const storageKey = "token"

// Session holds the current token and user in memory. It is an explicit
// object owned by the Client rather than global state; persistence happens
// only at defined lifecycle points (startup load, login/register success,
// logout).
type Session struct {
	Token string
	User  *user.UserWithRole
}

// Authenticated reports whether a token is present. Presence only; the
// token is not verified against the server.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionStore persists the session token across process restarts
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore persists the token as JSON under the fixed storage key in a
// single file
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed session store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

// Load reads the persisted token. A missing file means no session.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	stored := map[string]string{}
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("failed to parse session file: %w", err)
	}
	return stored[storageKey], nil
}

// Save writes the token to the session file
func (s *FileStore) Save(token string) error {
	data, err := json.Marshal(map[string]string{storageKey: token})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted token
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}
