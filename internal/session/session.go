// Package session persists the API token between runs so the client stays
// signed in across restarts, the way the web app keeps it in local storage.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildakash/taskdeck/pkg/domain"
)

// EnvToken overrides the token file when set.
const EnvToken = "TASKDECK_TOKEN"

// Session is the client's credential plus the profile that validated it.
// The profile is only ever set after a successful auth call.
type Session struct {
	Token string
	User  *domain.User
}

// Authenticated is derived, never stored: true iff a profile is held.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Store reads and writes the token file.
type Store struct {
	path string
}

// NewStore creates a store rooted at the given token file path. An empty
// path resolves to ~/.taskdeck/token.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("session: get home dir: %w", err)
		}
		path = filepath.Join(home, ".taskdeck", "token")
	}
	return &Store{path: path}, nil
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted token using precedence: env var > file > empty.
// A missing or unreadable file is treated as "not signed in", not an error.
func (s *Store) Load() string {
	if tok := os.Getenv(EnvToken); tok != "" {
		return tok
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token to disk, creating the parent directory if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("session: create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent file succeeds; logout
// must always succeed.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove token: %w", err)
	}
	return nil
}
