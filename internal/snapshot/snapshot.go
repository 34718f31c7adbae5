// Package snapshot persists the session triple as JSON. It is the external
// collaborator the mode controller hands a successfully saved document to;
// the core itself never touches the filesystem.
package snapshot

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/podraft/podraft/internal/session"
)

// ErrStateNotFound is returned when no snapshot has been written yet.
var ErrStateNotFound = errors.New("snapshot: state not found")

// DefaultPath is the snapshot location relative to the working directory.
const DefaultPath = ".podraft/state.json"

// Store reads and writes session snapshots at one path.
type Store struct {
	path string
}

// NewStore creates a store rooted at the given path. An empty path falls
// back to DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted triple if present.
func (s *Store) Load() (session.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.State{}, ErrStateNotFound
		}
		return session.State{}, err
	}
	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return session.State{}, err
	}
	return state, nil
}

// Save writes the triple to disk, creating the parent directory if needed.
func (s *Store) Save(state session.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(encoded, '\n'), 0o644)
}
