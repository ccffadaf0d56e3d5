// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// CachingMarketRepository decorates a MarketDataRepository with Redis caching.
// Only series that pass validation are cached, so an unknown ticker is looked
// up again on the next request.
type CachingMarketRepository struct {
	inner     usecase.MarketDataRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.MarketDataRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketDataRepository with Redis caching.
// If ttl is 0, entries expire at the next 08:00 America/New_York.
// If namespace is empty, it uses "aggs". A nil rdb disables caching.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketDataRepository, namespace string) *CachingMarketRepository {
	ttlFn := func() time.Duration { return ttl }
	if ttl <= 0 {
		ttlFn = func() time.Duration { return TimeUntilNextRefresh(time.Now()) }
	}
	if namespace == "" {
		namespace = "aggs"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttlFn,
		namespace: namespace,
	}
}

// GetAggregates retrieves a series, checking the cache first then falling back to the API.
func (c *CachingMarketRepository) GetAggregates(ctx context.Context, ticker string, r daterange.DateRange) (*entity.PriceSeries, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetAggregates(ctx, ticker, r)
	}

	key := c.cacheKey(ticker, r)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.PriceSeries
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("price series cache hit", "key", key)
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the API
	out, err := c.inner.GetAggregates(ctx, ticker, r)
	if err != nil {
		return nil, err
	}

	// 3) Store valid series only (best effort)
	if ok, _ := usecase.ValidateStockData(out); ok {
		if b, err := json.Marshal(out); err == nil {
			if err := c.rdb.Set(ctx, key, b, c.ttl()).Err(); err != nil {
				slog.Warn("failed to cache price series", "key", key, "error", err)
			}
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a ticker and date range.
func (c *CachingMarketRepository) cacheKey(ticker string, r daterange.DateRange) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(strings.ToUpper(ticker)),
		safe(r.Start),
		safe(r.End),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
