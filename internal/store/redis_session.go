package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// RedisSessionStore keeps sessions in Redis as JSON with a 24h sliding TTL,
// so conversations survive process restarts.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Get loads and decodes the stored session.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*model.SessionHistory, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session model.SessionHistory
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Put stores the session and refreshes its TTL.
func (s *RedisSessionStore) Put(ctx context.Context, session *model.SessionHistory) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.SessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Delete removes the session key.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	deleted, err := s.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}
