// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/adapters/polygon"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/cache"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/config"
	infrahttp "github.com/ouchsaray/ai-stock-trader/internal/platform/http"
)

// NewMarket creates a Polygon market-data repository with its HTTP client.
// When Redis is available the repository is wrapped with a read-through cache.
func NewMarket(cfg *config.Config, rdb *redis.Client) usecase.MarketDataRepository {
	pcfg := polygon.Config{
		APIKey:  cfg.Polygon.APIKey,
		BaseURL: cfg.Polygon.BaseURL,
		Timeout: cfg.Polygon.Timeout,
	}
	market := polygon.NewPolygonMarket(pcfg, infrahttp.NewHTTPClient(cfg.Polygon.Timeout))
	if rdb == nil {
		return market
	}
	return cache.NewCachingMarketRepository(rdb, cfg.Cache.TTL, market, "aggs")
}
