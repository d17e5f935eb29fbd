// Package sessionfile persists the session as a small JSON document on
// disk, the closest analog to the browser localStorage origin the session
// originally lived in.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
)

type Store struct {
	path string
}

var _ = sessionstore.Store(&Store{})

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}

	return filepath.Join(dir, "wallet-connector", "session.json"), nil
}

type sessionFile struct {
	Username string `json:"username"`
}

func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("reading session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("decoding session file: %w", err)
	}

	return f.Username, nil
}

func (s *Store) Save(_ context.Context, username string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.Marshal(sessionFile{Username: username})
	if err != nil {
		return fmt.Errorf("encoding session file: %w", err)
	}

	// Write-then-rename keeps a concurrent reader from observing a
	// partially written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}

	return nil
}

func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
