// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// プロセスが応答できるかだけを返し、依存先は確認しません。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Check は依存先に到達できるかを確認します。
type Check func(ctx context.Context) error

// ReadyHandler は依存先（Redisなど）の状態を /readyz で返します。
type ReadyHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewReadyHandler はReadyHandlerの新しいインスタンスを生成します。
func NewReadyHandler(checks map[string]Check) *ReadyHandler {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &ReadyHandler{checks: checks, timeout: 2 * time.Second}
}

// Ready はすべての確認が成功すれば200、1つでも失敗すれば503を返します。
func (h *ReadyHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := gin.H{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	c.JSON(status, body)
}
