package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workboard/taskboard/internal/core/ports"
)

// SessionStore keeps the session record under a single key. A zero TTL keeps
// the record until it is cleared.
type SessionStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewSessionStore(client redis.Cmdable, key string, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, key: key, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return b, nil
}

func (s *SessionStore) Save(ctx context.Context, record []byte) error {
	if err := s.client.Set(ctx, s.key, record, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
