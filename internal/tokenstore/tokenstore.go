// Package tokenstore persists the access token obtained by login.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the token persistence contract. Implementations are injected into
// the device flow and the backend client; there is no ambient global token.
type Store interface {
	// Get returns the stored token, or ok=false if none is stored.
	Get() (token string, ok bool, err error)

	// Set persists the token.
	Set(token string) error

	// Clear deletes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// FileStore stores the token in a single file restricted to the owner.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Set implements Store. The file is written with mode 0600.
func (s *FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
