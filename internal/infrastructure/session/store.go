package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
)

// sessionKey is the fixed key the serialized profile is stored under
const sessionKey = "user_session"

// Store persists the logged-in user's profile on disk so a session
// survives app restarts. One JSON document under a fixed key; nothing
// else is ever cached locally.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (created on first save)
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionKey+".json")
}

// Save writes the profile, replacing any previous session
func (s *Store) Save(user *entities.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

// Load returns the stored profile, or (nil, nil) when no session exists
func (s *Store) Load() (*entities.User, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Clear removes the stored session; clearing an absent session is not an error
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
