package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vesran/guildboard/internal/domain"
)

// Record is the dashboard session payload. The login service writes one per
// active session under SessionKey with its own TTL; this backend only reads
// and deletes.
type Record struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	AccessToken string    `json:"access_token"` // Discord OAuth bearer token of the session user
	CreatedAt   time.Time `json:"created_at"`
}

// Sessions is the Redis-backed dashboard session store.
type Sessions struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Sessions, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Sessions{client: client}, nil
}

func (s *Sessions) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis.Sessions.Close: %w", err)
	}
	return nil
}

// Get returns the session record for the given session ID. A missing or
// expired record yields domain.ErrNotFound.
func (s *Sessions) Get(ctx context.Context, sessionID string) (*Record, error) {
	payload, err := s.client.Get(ctx, SessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis.Sessions.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Sessions.Get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("redis.Sessions.Get: decode: %w", err)
	}

	return &rec, nil
}

// Delete drops a session record, logging the user out of the dashboard.
// Deleting an already-expired session is a no-op.
func (s *Sessions) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis.Sessions.Delete: %w", err)
	}
	return nil
}

// SessionKey returns the Redis key for a dashboard session.
func SessionKey(sessionID string) string {
	return "guildboard:session:" + sessionID
}
