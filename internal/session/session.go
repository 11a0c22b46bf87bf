// Package session persists the login session and gates navigation on it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session is the locally stored evidence that a user has authenticated.
// Presence of a non-empty UserID is the sole validity check: there is no
// expiry and no refresh.
type Session struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// Store reads and writes the session file. Storage failures are returned to
// the caller unwrapped; there is no silent fallback.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session. A missing file yields a zero session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save writes the session with mode 0600, creating the parent directory
// if needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UserID returns the stored user identifier, empty when logged out.
func (s *Store) UserID() (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

// Authenticated reports whether a user is logged in: true iff the stored
// user identifier is a non-empty string.
func (s *Store) Authenticated() (bool, error) {
	id, err := s.UserID()
	if err != nil {
		return false, err
	}
	return id != "", nil
}
