// Package storage persists the auth snapshot on the local disk.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

// FileSessionStorage stores the snapshot as a JSON file readable only by
// the current user. Writes go through a temp file and a rename.
type FileSessionStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileSessionStorage(path string) *FileSessionStorage {
	return &FileSessionStorage{path: path}
}

func (s *FileSessionStorage) Load(_ context.Context) (domain.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.PersistedSession{}, ports.ErrNoSession
	}
	if err != nil {
		return domain.PersistedSession{}, fmt.Errorf("session load: %w", err)
	}

	var snap domain.PersistedSession
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.PersistedSession{}, fmt.Errorf("session decode: %w", err)
	}
	return snap, nil
}

func (s *FileSessionStorage) Save(_ context.Context, snap domain.PersistedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".auth-storage-*")
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *FileSessionStorage) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session remove: %w", err)
	}
	return nil
}
