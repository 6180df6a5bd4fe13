package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"azimuth/internal/types"
)

var (
	bucketSessionState = []byte("session_state")
	keySessionState    = []byte("state")
)

type BboltSessionStateStore struct {
	db *bolt.DB
}

func NewBboltSessionStateStore(path string) (*BboltSessionStateStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("state db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessionState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltSessionStateStore{db: db}, nil
}

func (s *BboltSessionStateStore) Load(ctx context.Context) (*types.SessionState, error) {
	state := &types.SessionState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessionState)
		if b == nil {
			return nil
		}
		raw := b.Get(keySessionState)
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *BboltSessionStateStore) Save(ctx context.Context, state *types.SessionState) error {
	if state == nil {
		return errors.New("state is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSessionState)
		if err != nil {
			return err
		}
		return b.Put(keySessionState, raw)
	})
}

func (s *BboltSessionStateStore) Close() error {
	return s.db.Close()
}
