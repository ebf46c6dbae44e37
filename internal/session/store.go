// Package session persists the authentication token and display name and
// tracks the live session of the process.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is an authenticated user's token and display name.
type Session struct {
	Token       string `json:"token"`
	DisplayName string `json:"user"`
}

// Store keeps one session in a file, mode 0600.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the session, creating the parent directory (0700) if needed.
func (s *Store) Save(token, displayName string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(Session{Token: token, DisplayName: displayName}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Read returns the stored session. ok is false when no session is stored.
// A file without a token counts as absent.
func (s *Store) Read() (sess Session, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("invalid %s: %w", filepath.Base(s.path), err)
	}
	if sess.Token == "" {
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
