package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

// SessionStorage keeps the auth snapshot as JSON under a single key.
// Key format: <namespace>:auth-storage
type SessionStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSessionStorage wraps client. A zero ttl keeps the snapshot until logout.
func NewSessionStorage(client *redis.Client, namespace string, ttl time.Duration) *SessionStorage {
	key := domain.SessionStorageKey
	if namespace != "" {
		key = namespace + ":" + key
	}
	return &SessionStorage{client: client, key: key, ttl: ttl}
}

func (s *SessionStorage) Load(ctx context.Context) (domain.PersistedSession, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (s *SessionStorage) Save(ctx context.Context, snap domain.PersistedSession) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStorage) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session remove: %w", err)
	}
	return nil
}

// Ping reports whether redis is reachable.
func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
