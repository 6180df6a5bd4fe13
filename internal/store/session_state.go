// Package store persists UI session state between runs. Two backends exist:
// a JSON file (default) and a bbolt database, selected by config.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"azimuth/internal/types"
)

type SessionStateStore interface {
	Load(ctx context.Context) (*types.SessionState, error)
	Save(ctx context.Context, state *types.SessionState) error
	Close() error
}

// Open selects a backend by name. Anything other than "bbolt" gets the file
// store.
func Open(backend, path string) (SessionStateStore, error) {
	if backend == "bbolt" {
		return NewBboltSessionStateStore(path)
	}
	return NewFileSessionStateStore(path), nil
}

type FileSessionStateStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStateStore(path string) *FileSessionStateStore {
	return &FileSessionStateStore{path: path}
}

func (s *FileSessionStateStore) Load(ctx context.Context) (*types.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &types.SessionState{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *FileSessionStateStore) Save(ctx context.Context, state *types.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("state is required")
	}
	return writeJSONAtomic(s.path, state)
}

func (s *FileSessionStateStore) Close() error {
	return nil
}

func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
