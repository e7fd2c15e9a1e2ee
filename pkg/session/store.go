// Package session persists the bearer credential and cached profile across
// process restarts. The store is the single shared mutable resource in the
// client: the transport reads the token before every request and clears it
// on a 401, possibly while other calls are in flight.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

const (
	storeDirName  = "venue-cli"
	storeFileName = "session.json"
)

// Session is the persisted credential plus the profile captured at login.
type Session struct {
	Token   string        `json:"token"`
	Profile model.Profile `json:"profile"`
}

// Store reads and writes the session file. All methods are safe for
// concurrent use; the in-memory copy and the file are updated together.
type Store struct {
	path string

	mu     sync.Mutex
	cached *Session
	loaded bool
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, storeDirName, storeFileName), nil
}

// Save writes the session to disk with owner-only permissions and primes
// the in-memory copy.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	copied := sess
	s.cached = &copied
	s.loaded = true
	return nil
}

// Load returns the stored session, or nil when none exists. The result is
// cached; subsequent Token/Profile reads do not hit the disk.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*Session, error) {
	if s.loaded {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.loaded = true
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sess.Token == "" {
		s.loaded = true
		return nil, nil
	}

	s.cached = &sess
	s.loaded = true
	return s.cached, nil
}

// Clear removes the stored session. A missing file is not an error, but a
// file that cannot be removed is: it means the device could not honor a
// logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	s.loaded = true

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}

// Token returns the current bearer token. The second return is false when
// no session is present or the store cannot be read.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadLocked()
	if err != nil || sess == nil {
		return "", false
	}
	return sess.Token, true
}

// Profile returns the cached profile captured at login.
func (s *Store) Profile() (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadLocked()
	if err != nil || sess == nil {
		return model.Profile{}, false
	}
	return sess.Profile, true
}
