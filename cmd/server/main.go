package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/ouchsaray/ai-stock-trader/internal/app/di"
	"github.com/ouchsaray/ai-stock-trader/internal/app/router"
	reporthandler "github.com/ouchsaray/ai-stock-trader/internal/feature/report/transport/handler"
	reportusecase "github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	tickershandler "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/transport/handler"
	tickersusecase "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/config"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/http/handler"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/logger"
	infraredis "github.com/ouchsaray/ai-stock-trader/internal/platform/redis"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/session"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(envOr("CONFIG_FILE", "config.yaml"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stdout)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis
	var rdb *redisv9.Client
	checks := map[string]handler.Check{}
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{Addr: cfg.RedisAddr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			slog.Warn("Redis unavailable. Running with in-memory sessions and without cache.")
		} else {
			rdb = tmp
			checks["redis"] = infraredis.Ping(rdb)
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// セッション署名鍵（開発中の注意喚起）
	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = session.NewSecret()
		if err != nil {
			slog.Error("failed to generate session secret", "error", err)
			os.Exit(1)
		}
		slog.Warn("SESSION_SECRET is not set. Sessions will not survive a restart; set a strong secret in production.")
	}

	// Repository
	sessionRepo := di.NewSessionRepository(rdb, cfg.Session.TTL)
	market := di.NewMarket(cfg, rdb)
	generator, err := di.NewReportGenerator(ctx, cfg)
	if err != nil {
		slog.Error("failed to create report generator", "error", err)
		os.Exit(1)
	}

	// Usecase
	tickersUC := tickersusecase.NewTickersUsecase(sessionRepo, tickersusecase.Config{
		MaxTickers:   cfg.Tickers.Max,
		StartDaysAgo: cfg.Dates.StartDaysAgo,
		EndDaysAgo:   cfg.Dates.EndDaysAgo,
	})
	reportUC := reportusecase.NewReportUsecase(tickersUC, market, generator)

	// Handler
	tickersH := tickershandler.NewTickersHandler(tickersUC)
	reportH := reporthandler.NewReportHandler(reportUC)
	readyH := handler.NewReadyHandler(checks)
	sessionMW := session.Middleware(session.NewIssuer(secret, cfg.Session.TTL), session.Options{
		MaxAge: cfg.Session.TTL,
		Secure: cfg.Session.SecureCookie,
	})

	// ルータ生成
	r := router.NewRouter(tickersH, reportH, readyH, sessionMW, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// レポート生成はPolygonとLLMを順に呼ぶため長めにする
		WriteTimeout: cfg.Polygon.Timeout*time.Duration(cfg.Tickers.Max) + cfg.LLM.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting HTTP server", "addr", cfg.Server.Addr, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "redis", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	slog.Info("shutdown signal received")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
