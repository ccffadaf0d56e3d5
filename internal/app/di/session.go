package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/adapters"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to process memory.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) usecase.SessionRepository {
	if rdb != nil {
		return adapters.NewSessionRedis(rdb, "session", ttl)
	}
	return adapters.NewSessionMemory(ttl)
}
