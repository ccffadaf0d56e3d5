// Package adapters provides SessionRepository implementations for the tickers feature.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 24 * time.Hour

// SessionRedis implements usecase.SessionRepository using Redis.
// Every Save refreshes the TTL, so the session expires after ttl of inactivity.
type SessionRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
// A non-positive ttl falls back to DefaultSessionTTL, an empty prefix to "session".
func NewSessionRedis(client *redis.Client, prefix string, ttl time.Duration) *SessionRedis {
	if prefix == "" {
		prefix = "session"
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Find retrieves a session by its ID.
func (r *SessionRedis) Find(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Selection.Tickers == nil {
		session.Selection.Tickers = []string{}
	}

	return &session, nil
}

// Save stores the session and resets its TTL.
func (r *SessionRedis) Save(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(session.ID), data, r.ttl).Err()
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.sessionKey(id)).Err()
}
